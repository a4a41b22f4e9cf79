// Package rsc decodes the header and page layout of resource archives.
package rsc

import (
	"fmt"
	"strings"
)

// BucketCount is the number of page buckets described by a flags word.
const BucketCount = 9

// baseSize is the page size of the smallest bucket before applying the shift.
const baseSize = 0x200

// Bit positions and widths of the bucket counts. Bucket 0 starts at bit 4,
// directly above the 4 bit base shift.
var (
	bucketShifts = [BucketCount]uint32{4, 5, 7, 11, 17, 24, 25, 26, 27}
	bucketMasks  = [BucketCount]uint32{0x1, 0x3, 0xF, 0x3F, 0x7F, 0x1, 0x1, 0x1, 0x1}
)

// Layout describes how a region is divided into page buckets.
type Layout struct {
	Flags     uint32
	Type      uint32 // resource type nibble, bits 28-31
	BaseShift uint32
	BaseSize  uint32

	ChunkSizes   [BucketCount]uint64
	BucketCounts [BucketCount]uint32
	BucketSizes  [BucketCount]uint64
}

// DecodeFlags decodes a page flags word. Every value is valid.
func DecodeFlags(flags uint32) Layout {
	shift := flags & 0xF
	l := Layout{
		Flags:     flags,
		Type:      (flags >> 28) & 0xF,
		BaseShift: shift,
		BaseSize:  baseSize << shift,
	}

	for i := range BucketCount {
		l.ChunkSizes[i] = uint64(l.BaseSize) << (BucketCount - 1 - i)
		l.BucketCounts[i] = (flags >> bucketShifts[i]) & bucketMasks[i]
		l.BucketSizes[i] = l.ChunkSizes[i] * uint64(l.BucketCounts[i])
	}
	return l
}

// Size returns the total size of the region in bytes.
func (l Layout) Size() uint64 {
	var size uint64
	for _, s := range l.BucketSizes {
		size += s
	}
	return size
}

// Pages returns the total number of pages over all buckets.
func (l Layout) Pages() int {
	var pages int
	for _, c := range l.BucketCounts {
		pages += int(c)
	}
	return pages
}

func (l Layout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "size=0x%x base=0x%x buckets=[", l.Size(), l.BaseSize)
	for i, c := range l.BucketCounts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "0x%x*%d", l.ChunkSizes[i], c)
	}
	sb.WriteByte(']')
	return sb.String()
}

// EncodeFlags builds a flags word from a base shift and bucket counts.
// Counts wider than their bit field are rejected.
func EncodeFlags(shift uint32, counts [BucketCount]uint32) (uint32, error) {
	if shift > 0xF {
		return 0, fmt.Errorf("base shift %d exceeds 4 bits", shift)
	}

	flags := shift
	for i, c := range counts {
		if c > bucketMasks[i] {
			return 0, fmt.Errorf("bucket %d count %d exceeds maximum %d", i, c, bucketMasks[i])
		}
		flags |= c << bucketShifts[i]
	}
	return flags, nil
}
