// Package loader handles resource file loading operations.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sys/unix"
)

// File is the content of a loaded resource file.
type File struct {
	Path   string
	Data   []byte
	Mapped bool

	mapping []byte
}

// Close releases the file mapping, if any. Data must not be used afterwards.
func (f *File) Close() error {
	if f.mapping == nil {
		return nil
	}
	err := unix.Munmap(f.mapping)
	f.mapping = nil
	f.Data = nil
	if err != nil {
		return fmt.Errorf("unmapping file %s: %w", f.Path, err)
	}
	return nil
}

// Loader handles loading resource files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new resource file loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the whole file at path into memory. When mapped is set the
// file is mapped read-only instead of copied to the heap.
func (l *Loader) Load(ctx context.Context, path string, mapped bool) (*File, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("opening file %s: is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// empty files can not be mapped
	if mapped && stat.Size() > 0 {
		mapping, err := unix.Mmap(int(file.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
		if err != nil {
			return nil, fmt.Errorf("mapping file %s: %w", path, err)
		}
		return &File{
			Path:    path,
			Data:    mapping,
			Mapped:  true,
			mapping: mapping,
		}, nil
	}

	l.checkAvailableMemory(ctx, path, uint64(stat.Size()))

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return &File{
		Path: path,
		Data: data,
	}, nil
}

// checkAvailableMemory warns when a file is larger than the memory currently
// available to the system.
func (l *Loader) checkAvailableMemory(ctx context.Context, path string, size uint64) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		l.logger.Debug("Reading memory statistics failed", log.Err(err))
		return
	}
	if size > vm.Available {
		l.logger.Warn("File is larger than available memory, consider using -mmap",
			log.String("file", path),
			log.Hex("size", size),
			log.Hex("available", vm.Available))
	}
}
