// Package pipeline orchestrates the resource unpacking stages.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cfxkit/cfxtool/internal/archive"
	"github.com/cfxkit/cfxtool/internal/detector"
	"github.com/cfxkit/cfxtool/internal/inflate"
	"github.com/cfxkit/cfxtool/internal/loader"
	"github.com/cfxkit/cfxtool/internal/options"
	"github.com/cfxkit/cfxtool/internal/rsc"
	"github.com/retroenv/retrogolib/log"
)

// Addresses of the fields read from the decompressed physical region.
const (
	vftAddress       = archive.PhysicalBase
	pagesInfoAddress = archive.PhysicalBase + 8
)

// Result contains the values decoded from a resource file.
type Result struct {
	File   string     `json:"file"`
	Kind   string     `json:"kind"`
	Loaded int        `json:"loaded_bytes"`
	Header rsc.Header `json:"header"`

	VirtualLayout  rsc.Layout `json:"-"`
	PhysicalLayout rsc.Layout `json:"-"`
	VirtualSize    uint64     `json:"virtual_size"`
	PhysicalSize   uint64     `json:"physical_size"`

	DecompressedVirtualSize  int `json:"decompressed_virtual_size"`
	DecompressedPhysicalSize int `json:"decompressed_physical_size"`

	VFT              uint64 `json:"vft"`
	PagesInfoPointer uint64 `json:"pages_info_pointer"`
}

// Pipeline orchestrates the complete unpack workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new unpack pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute runs the complete unpack pipeline on the input file.
func (p *Pipeline) Execute(ctx context.Context, opts options.Unpack) (*Result, error) {
	kind := p.detector.Detect(opts.Input)

	file, err := p.loader.Load(ctx, opts.Input, opts.Mmap)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.Error("Closing file failed", log.Err(err))
		}
	}()

	p.logger.Info("Loaded file",
		log.String("file", opts.Input),
		log.Stringer("kind", kind),
		log.Int("bytes", len(file.Data)))

	result, err := p.ExecuteWithData(ctx, file.Data, opts)
	if err != nil {
		return nil, err
	}

	result.File = opts.Input
	result.Kind = kind.Name
	p.detector.CheckVersion(kind, result.Header.Version)
	return result, nil
}

// ExecuteWithData runs the unpack pipeline on an already loaded file.
// This is useful for testing and programmatic usage where the data is already in memory.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, opts options.Unpack) (*Result, error) {
	mem := archive.NewMemory(data)
	result := &Result{
		Loaded: len(data),
	}

	header, err := p.readHeader(mem)
	if err != nil {
		return nil, err
	}
	result.Header = header

	p.sizeRegions(result, opts.LegacyPhysicalSizing)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	virtualRaw, physicalRaw, err := extractRegions(mem, result.VirtualSize, result.PhysicalSize)
	if err != nil {
		return nil, fmt.Errorf("extracting regions: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	virtualData, physicalData, err := p.decompressRegions(result, virtualRaw, physicalRaw)
	if err != nil {
		return nil, err
	}

	if err := p.readPhysicalFields(result, virtualData, physicalData); err != nil {
		return nil, err
	}
	return result, nil
}

// readHeader verifies the file signature and parses the header.
func (p *Pipeline) readHeader(mem *archive.Memory) (rsc.Header, error) {
	if err := rsc.CheckMagic(mem); err != nil {
		return rsc.Header{}, fmt.Errorf("checking magic: %w", err)
	}

	header, err := rsc.ParseHeader(mem)
	if err != nil {
		return rsc.Header{}, fmt.Errorf("parsing header: %w", err)
	}
	p.logger.Info("Parsed header", log.Stringer("header", header))
	return header, nil
}

// sizeRegions decodes the page flags of both regions. In legacy mode the
// physical region is sized from the virtual page flags.
func (p *Pipeline) sizeRegions(result *Result, legacy bool) {
	physicalFlags := result.Header.PhysicalPageFlags
	if legacy {
		physicalFlags = result.Header.VirtualPageFlags
	}

	result.VirtualLayout = rsc.DecodeFlags(result.Header.VirtualPageFlags)
	result.PhysicalLayout = rsc.DecodeFlags(physicalFlags)
	result.VirtualSize = result.VirtualLayout.Size()
	result.PhysicalSize = result.PhysicalLayout.Size()

	p.logger.Info("Virtual size", log.Hex("size", result.VirtualSize), log.Int("pages", result.VirtualLayout.Pages()))
	p.logger.Info("Physical size", log.Hex("size", result.PhysicalSize), log.Int("pages", result.PhysicalLayout.Pages()))
	p.logger.Debug("Region layouts",
		log.Stringer("virtual", result.VirtualLayout),
		log.Stringer("physical", result.PhysicalLayout))
}

// extractRegions reads the raw virtual region directly followed by the raw
// physical region.
func extractRegions(mem *archive.Memory, virtualSize, physicalSize uint64) ([]byte, []byte, error) {
	virtualRaw, err := readRegion(mem, virtualSize)
	if err != nil {
		return nil, nil, fmt.Errorf("reading virtual region: %w", err)
	}
	physicalRaw, err := readRegion(mem, physicalSize)
	if err != nil {
		return nil, nil, fmt.Errorf("reading physical region: %w", err)
	}
	return virtualRaw, physicalRaw, nil
}

// readRegion checks the remaining input before allocating, the flags of a
// corrupt file can describe regions of several gigabytes.
func readRegion(mem *archive.Memory, size uint64) ([]byte, error) {
	if size > mem.Remaining() {
		return nil, fmt.Errorf("%w: region of %d bytes at position %d, %d bytes left",
			archive.ErrOutOfBounds, size, mem.Position(), mem.Remaining())
	}

	buf := make([]byte, size)
	if _, err := mem.ReadBytes(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (p *Pipeline) decompressRegions(result *Result, virtualRaw, physicalRaw []byte) ([]byte, []byte, error) {
	virtualData, err := inflate.Region(virtualRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("decompressing virtual region: %w", err)
	}
	physicalData, err := inflate.Region(physicalRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("decompressing physical region: %w", err)
	}

	result.DecompressedVirtualSize = len(virtualData)
	result.DecompressedPhysicalSize = len(physicalData)
	p.logger.Info("Decompressed virtual size", log.Int("size", len(virtualData)))
	p.logger.Info("Decompressed physical size", log.Int("size", len(physicalData)))
	return virtualData, physicalData, nil
}

// readPhysicalFields reads the virtual function table and pages info
// pointers at the start of the physical region.
func (p *Pipeline) readPhysicalFields(result *Result, virtualData, physicalData []byte) error {
	res := archive.NewResource(virtualData, physicalData)

	var err error
	res.SetPosition(vftAddress)
	if result.VFT, err = archive.ReadUint64(res); err != nil {
		return fmt.Errorf("reading vft: %w", err)
	}
	res.SetPosition(pagesInfoAddress)
	if result.PagesInfoPointer, err = archive.ReadUint64(res); err != nil {
		return fmt.Errorf("reading pages info pointer: %w", err)
	}

	p.logger.Info("VFT", log.Hex("value", result.VFT))
	p.logger.Info("Pages info pointer", log.Hex("value", result.PagesInfoPointer))
	return nil
}
