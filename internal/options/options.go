// Package options contains the program options.
package options

// Command names.
const (
	CommandUnpack = "unpack"
	CommandCreate = "create"
)

// Flags contains behavior options shared by all commands.
type Flags struct {
	Debug bool `flag:"debug" usage:"enable debug logging"`
	Quiet bool `flag:"q" usage:"quiet mode"`
}

// Program options of the tool.
type Program struct {
	Flags

	Command string
	Unpack  Unpack
	Create  Create
}

// Unpack contains the options of the unpack command.
type Unpack struct {
	Input  string `flag:"i" usage:"input resource file"`
	Output string `flag:"o" usage:"output .json report file (default: none)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ydr)"`

	Mmap bool `flag:"mmap" usage:"map the input file instead of reading it into memory"`

	// LegacyPhysicalSizing sizes the physical region from the virtual page
	// flags, matching the output of earlier versions of the tool.
	LegacyPhysicalSizing bool `flag:"legacy-physical-size" usage:"size the physical region from the virtual page flags"`
}

// Create contains the options of the create command.
type Create struct {
	Name      string   `flag:"name" usage:"project name, used as the directory name"`
	Author    string   `flag:"author" usage:"author written to the manifest"`
	Dir       string   `flag:"dir" usage:"parent directory of the project" default:"."`
	DataFiles bool     `flag:"data-files" usage:"add a data directory and data_files entry"`
	Libraries []string `flag:"libs" usage:"comma separated libraries: es_extended, ox_lib, oxmysql"`
}
