// Package main implements a command line tool for resource archives and script projects
package main

import (
	"context"
	"errors"
	"os"

	"github.com/cfxkit/cfxtool/internal/cli"
	"github.com/cfxkit/cfxtool/internal/config"
	"github.com/cfxkit/cfxtool/internal/fileprocessor"
	"github.com/cfxkit/cfxtool/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Flags)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	switch opts.Command {
	case options.CommandCreate:
		if _, err := fileprocessor.CreateProject(logger, opts.Create); err != nil {
			logger.Fatal(err.Error())
		}
	case options.CommandUnpack:
		if !unpackFiles(ctx, logger, opts.Unpack) {
			os.Exit(1)
		}
	}
}

// unpackFiles processes all input files and returns whether all succeeded.
func unpackFiles(ctx context.Context, logger *log.Logger, opts options.Unpack) bool {
	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	ok := true
	for _, file := range files {
		opts.Input = file
		if opts.Batch != "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if _, err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return false
			}
			logger.Error("Unpacking failed", log.String("file", file), log.Err(err))
			ok = false
		}
	}
	return ok
}
