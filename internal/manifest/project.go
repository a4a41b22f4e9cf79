package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the name of the generated manifest file.
const FileName = "fxmanifest.lua"

// ErrProjectExists is returned when the project directory already contains a manifest.
var ErrProjectExists = errors.New("project already exists")

// Project is a script resource project to scaffold.
type Project struct {
	Name     string
	Manifest Manifest
}

// Validate checks that the project has a name and an author.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("project name is empty")
	}
	if strings.ContainsAny(p.Name, `/\`) {
		return fmt.Errorf("project name '%s' contains a path separator", p.Name)
	}
	if strings.TrimSpace(p.Manifest.Author) == "" {
		return errors.New("author name is empty")
	}
	return nil
}

// Write creates the project directory below parent and returns its path.
func (p Project) Write(parent string) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	base := filepath.Join(parent, p.Name)
	manifestPath := filepath.Join(base, FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return "", fmt.Errorf("%w: %s", ErrProjectExists, manifestPath)
	}

	dirs := []string{
		filepath.Join(base, "src", "client"),
		filepath.Join(base, "src", "server"),
		filepath.Join(base, "src", "shared"),
	}
	if p.Manifest.DataFiles {
		dirs = append(dirs, filepath.Join(base, "data"))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	for _, runtime := range []Runtime{Client, Server} {
		path := filepath.Join(base, filepath.FromSlash(runtime.entryScript()))
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return "", fmt.Errorf("creating file %s: %w", path, err)
		}
	}

	if err := os.WriteFile(manifestPath, []byte(p.Manifest.Build()), 0o644); err != nil {
		return "", fmt.Errorf("creating file %s: %w", manifestPath, err)
	}
	return base, nil
}
