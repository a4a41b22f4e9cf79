// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cfxkit/cfxtool/internal/manifest"
	"github.com/cfxkit/cfxtool/internal/options"
	"github.com/cfxkit/cfxtool/internal/pipeline"
	"github.com/goccy/go-json"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ErrNoFilesMatched is returned when a batch pattern matches no files.
var ErrNoFilesMatched = errors.New("no files matched")

// ProcessFile unpacks the input file and writes the report if an output file is set.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Unpack) (*pipeline.Result, error) {
	p := pipeline.New(logger)
	result, err := p.Execute(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("unpacking: %w", err)
	}

	if opts.Output != "" {
		if err := WriteReport(opts.Output, result); err != nil {
			return nil, err
		}
		logger.Info("Report written", log.String("file", opts.Output))
	}
	return result, nil
}

// WriteReport writes the result as indented JSON.
func WriteReport(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report file %s: %w", path, err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Unpack) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoFilesMatched, opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates the report filename for a given input file.
// The resource extension is kept since different resource kinds often share a name.
func GenerateOutputFilename(inputFile string) string {
	return inputFile + ".json"
}

// CreateProject scaffolds a new script resource project.
func CreateProject(logger *log.Logger, opts options.Create) (string, error) {
	libs, err := manifest.LookupLibraries(opts.Libraries)
	if err != nil {
		return "", err
	}

	project := manifest.Project{
		Name: opts.Name,
		Manifest: manifest.Manifest{
			Author:    opts.Author,
			DataFiles: opts.DataFiles,
			Libraries: libs,
		},
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	base, err := project.Write(dir)
	if err != nil {
		return "", fmt.Errorf("creating project: %w", err)
	}

	logger.Info("Project created",
		log.String("path", base),
		log.Int("libraries", len(libs)))
	return base, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("cfxtool", log.String("version", buildinfo.Version(version, commit, date)))
}
