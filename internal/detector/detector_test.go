package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name      string
		inputFile string
		wantKind  string
		wantVer   int32
	}{
		{
			name:      "drawable",
			inputFile: "prop_chair.ydr",
			wantKind:  "drawable",
			wantVer:   165,
		},
		{
			name:      "texture dictionary upper case",
			inputFile: "VEHSHARE.YTD",
			wantKind:  "texture dictionary",
			wantVer:   13,
		},
		{
			name:      "path with directories",
			inputFile: "/stream/maps/hills.ymap",
			wantKind:  "map data",
			wantVer:   2,
		},
		{
			name:      "unknown extension",
			inputFile: "archive.rpf",
			wantKind:  "unknown",
			wantVer:   -1,
		},
		{
			name:      "no extension",
			inputFile: "resource",
			wantKind:  "unknown",
			wantVer:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := d.Detect(tt.inputFile)
			assert.Equal(t, tt.wantKind, kind.String())
			assert.Equal(t, tt.wantVer, kind.Version)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	ytd := d.Detect("a.ytd")
	assert.True(t, d.CheckVersion(ytd, 13))
	assert.False(t, d.CheckVersion(ytd, 14))
	assert.True(t, d.CheckVersion(Unknown, 99))
}
