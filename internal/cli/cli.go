// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cfxkit/cfxtool/internal/manifest"
	"github.com/cfxkit/cfxtool/internal/options"
)

// ParseFlags parses the command line arguments of the process.
func ParseFlags() (options.Program, error) {
	return Parse(os.Args[1:])
}

// Parse parses a command followed by its flags and arguments.
func Parse(args []string) (options.Program, error) {
	var opts options.Program
	if len(args) == 0 {
		return opts, &UsageError{}
	}

	opts.Command = args[0]
	switch opts.Command {
	case options.CommandUnpack:
		return opts, parseUnpack(args[1:], &opts)
	case options.CommandCreate:
		return opts, parseCreate(args[1:], &opts)
	case "-h", "-help", "--help", "help":
		return opts, &UsageError{}
	default:
		return opts, &UsageError{msg: fmt.Sprintf("unknown command '%s'", opts.Command)}
	}
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags == nil {
		fmt.Printf("usage: cfxtool <command> [options]\n\n")
		fmt.Printf("commands:\n")
		fmt.Printf("  %-8s decode a resource file\n", options.CommandUnpack)
		fmt.Printf("  %-8s create a new script resource project\n\n", options.CommandCreate)
		return
	}

	switch e.flags.Name() {
	case options.CommandUnpack:
		fmt.Printf("usage: cfxtool unpack [options] <resource file>\n\n")
	default:
		fmt.Printf("usage: cfxtool %s [options]\n\n", e.flags.Name())
	}
	e.flags.PrintDefaults()
	fmt.Println()
}

func parseUnpack(args []string, opts *options.Program) error {
	flags := flag.NewFlagSet(options.CommandUnpack, flag.ContinueOnError)
	readCommonFlags(flags, &opts.Flags)
	readUnpackFlags(flags, &opts.Unpack)

	err := flags.Parse(args)
	rest := flags.Args()
	if err != nil || (len(rest) == 0 && opts.Unpack.Input == "" && opts.Unpack.Batch == "") {
		return &UsageError{flags: flags}
	}

	if err := validateArgs(rest); err != nil {
		return err
	}
	if len(rest) > 0 {
		opts.Unpack.Input = rest[0]
	}
	return nil
}

func parseCreate(args []string, opts *options.Program) error {
	flags := flag.NewFlagSet(options.CommandCreate, flag.ContinueOnError)
	readCommonFlags(flags, &opts.Flags)

	var libs string
	flags.StringVar(&opts.Create.Name, "name", "", "project name, used as the directory name")
	flags.StringVar(&opts.Create.Author, "author", "", "author written to the manifest")
	flags.StringVar(&opts.Create.Dir, "dir", ".", "parent directory of the project")
	flags.BoolVar(&opts.Create.DataFiles, "data-files", false, "add a data directory and data_files entry")
	flags.StringVar(&libs, "libs", "", "comma separated libraries: "+strings.Join(manifest.LibraryNames(), ", "))

	if err := flags.Parse(args); err != nil {
		return &UsageError{flags: flags}
	}
	if flags.NArg() > 0 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("Unexpected argument %s, the create command only accepts flags", flags.Arg(0)),
		}
	}
	if opts.Create.Name == "" || opts.Create.Author == "" {
		return &UsageError{flags: flags, msg: "Both -name and -author are required"}
	}

	if libs != "" {
		opts.Create.Libraries = strings.Split(libs, ",")
	}
	return nil
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to unpack, please pass the file to unpack as last argument", arg),
			}
		}
	}
	return nil
}

func readCommonFlags(flags *flag.FlagSet, opts *options.Flags) {
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readUnpackFlags(flags *flag.FlagSet, opts *options.Unpack) {
	flags.StringVar(&opts.Input, "i", "", "name of the input resource file")
	flags.StringVar(&opts.Output, "o", "", "name of the output .json report file, no report is written if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .json report naming, for example *.ydr")
	flags.BoolVar(&opts.Mmap, "mmap", false, "map the input file into memory instead of reading it")
	flags.BoolVar(&opts.LegacyPhysicalSizing, "legacy-physical-size", false, "size the physical region from the virtual page flags like earlier versions")
}
