// Package detector handles resource kind detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Kind describes a resource file type.
type Kind struct {
	Name    string
	Version int32 // header version written by the game for this kind
}

func (k Kind) String() string {
	return k.Name
}

// Unknown is returned for files with an unrecognized extension.
var Unknown = Kind{Name: "unknown", Version: -1}

var kinds = map[string]Kind{
	".ybn":  {Name: "bounds", Version: 43},
	".ycd":  {Name: "clip dictionary", Version: 46},
	".ydd":  {Name: "drawable dictionary", Version: 165},
	".ydr":  {Name: "drawable", Version: 165},
	".yft":  {Name: "fragment", Version: 162},
	".ymap": {Name: "map data", Version: 2},
	".ynd":  {Name: "path nodes", Version: 1},
	".ynv":  {Name: "navigation mesh", Version: 2},
	".ypt":  {Name: "particle effects", Version: 68},
	".ytd":  {Name: "texture dictionary", Version: 13},
	".ytyp": {Name: "map types", Version: 2},
}

// Detector handles resource kind detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new resource kind detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the resource kind from the file extension.
func (d *Detector) Detect(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	kind, ok := kinds[ext]
	if !ok {
		kind = Unknown
	}
	d.logger.Debug("Detected resource kind",
		log.Stringer("kind", kind),
		log.String("file", filename))
	return kind
}

// CheckVersion logs a warning when the header version does not match the
// version expected for the kind.
func (d *Detector) CheckVersion(kind Kind, version int32) bool {
	if kind == Unknown || kind.Version == version {
		return true
	}
	d.logger.Warn("Unexpected resource version",
		log.Stringer("kind", kind),
		log.Int("expected", int(kind.Version)),
		log.Int("got", int(version)))
	return false
}
