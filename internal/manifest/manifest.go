// Package manifest generates script resource projects and their fxmanifest.lua.
package manifest

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Runtime is the side a script is loaded on.
type Runtime int

const (
	Server Runtime = iota
	Client
	Shared
)

func (r Runtime) String() string {
	switch r {
	case Server:
		return "server"
	case Client:
		return "client"
	case Shared:
		return "shared"
	default:
		return fmt.Sprintf("runtime(%d)", int(r))
	}
}

// entryScript returns the project script generated for the runtime, if any.
func (r Runtime) entryScript() string {
	switch r {
	case Server:
		return "src/server/main.lua"
	case Client:
		return "src/client/main.lua"
	default:
		return ""
	}
}

// Library is a script library that can be imported by a project.
type Library struct {
	Name    string
	Import  string
	Runtime Runtime
}

// ErrUnknownLibrary is returned for library names that are not known.
var ErrUnknownLibrary = errors.New("unknown library")

var libraries = map[string]Library{
	"es_extended": {Name: "es_extended", Import: "@es_extended/imports.lua", Runtime: Shared},
	"ox_lib":      {Name: "ox_lib", Import: "@ox_lib/init.lua", Runtime: Shared},
	"oxmysql":     {Name: "oxmysql", Import: "@oxmysql/lib/MySQL.lua", Runtime: Server},
}

// LibraryNames returns the sorted names of all known libraries.
func LibraryNames() []string {
	names := make([]string, 0, len(libraries))
	for name := range libraries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupLibraries resolves library names, duplicates are ignored.
func LookupLibraries(names []string) ([]Library, error) {
	var result []Library
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		lib, ok := libraries[name]
		if !ok {
			return nil, fmt.Errorf("%w '%s', valid libraries: %s",
				ErrUnknownLibrary, name, strings.Join(LibraryNames(), ", "))
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, lib)
	}
	return result, nil
}

// Manifest describes the content of a fxmanifest.lua file.
type Manifest struct {
	Author    string
	DataFiles bool
	Libraries []Library
}

// Build renders the manifest.
func (m Manifest) Build() string {
	var sb strings.Builder
	sb.WriteString("fx_version \"cerulean\"\n")
	sb.WriteString("game \"gta5\"\n")
	sb.WriteString("lua54 \"yes\"\n\n")
	fmt.Fprintf(&sb, "author %q\n", m.Author)
	sb.WriteString("version \"0.0.0\"\n")

	for _, runtime := range []Runtime{Server, Client, Shared} {
		sb.WriteString("\n")
		sb.WriteString(m.scriptSection(runtime))
		sb.WriteString("\n")
	}

	if m.DataFiles {
		sb.WriteString("\ndata_files {\n    \"data/*.lua\"\n}\n")
	}
	return strings.TrimSpace(sb.String())
}

// scriptSection renders the imports of all libraries of the runtime
// followed by the project entry script.
func (m Manifest) scriptSection(runtime Runtime) string {
	var scripts []string
	for _, lib := range m.Libraries {
		if lib.Runtime == runtime {
			scripts = append(scripts, lib.Import)
		}
	}
	if entry := runtime.entryScript(); entry != "" {
		scripts = append(scripts, entry)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s_scripts {\n", runtime)
	for i, script := range scripts {
		fmt.Fprintf(&sb, "    %q", script)
		if i < len(scripts)-1 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}
