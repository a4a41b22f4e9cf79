package archive

import (
	"errors"
	"runtime"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestReadNumbers(t *testing.T) {
	data := []byte{
		0x52, 0x53, 0x43, 0x37, // uint32
		0xFE, 0xFF, 0xFF, 0xFF, // int32 -2
		0x00, 0x00, 0x80, 0x3F, // float32 1.0
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // uint64
		0x02, 0x00, // bools
	}
	m := NewMemory(data)

	u32, err := ReadUint32(m)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x37435352), u32)

	i32, err := ReadInt32(m)
	assert.NoError(t, err)
	assert.Equal(t, int32(-2), i32)

	f32, err := ReadFloat32(m)
	assert.NoError(t, err)
	assert.Equal(t, float32(1.0), f32)

	u64, err := ReadUint64(m)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	b, err := ReadBool(m)
	assert.NoError(t, err)
	assert.True(t, b)
	b, err = ReadBool(m)
	assert.NoError(t, err)
	assert.False(t, b)

	_, err = ReadBool(m)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestReadUint32Short(t *testing.T) {
	m := NewMemory([]byte{1, 2, 3})
	_, err := ReadUint32(m)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, uint64(0), m.Position())
}

func TestReadString(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{
			name: "ascii",
			data: []byte{3, 0, 0, 0, 'f', 'o', 'o'},
			want: "foo",
		},
		{
			name: "empty",
			data: []byte{0, 0, 0, 0},
			want: "",
		},
		{
			name: "multi byte",
			data: []byte{2, 0, 0, 0, 0xC3, 0xA9},
			want: "é",
		},
		{
			name:    "invalid utf8",
			data:    []byte{2, 0, 0, 0, 0xC3, 0x28},
			wantErr: ErrInvalidString,
		},
		{
			name:    "truncated data",
			data:    []byte{5, 0, 0, 0, 'a', 'b'},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "length beyond data",
			data:    []byte{0xFF, 0xFF, 0xFF, 0x7F},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "truncated length",
			data:    []byte{5, 0},
			wantErr: ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadString(NewMemory(tt.data))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestReadStringLengthCheckedBeforeAlloc(t *testing.T) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := ReadString(NewMemory([]byte{0xFF, 0xFF, 0xFF, 0x7F}))
	runtime.ReadMemStats(&after)

	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.True(t, after.TotalAlloc-before.TotalAlloc < 1<<20)
}
