package gif

import (
	"math/bits"

	"github.com/pkg/errors"
)

// RGB is a 24-bit palette color
type RGB struct {
	R, G, B uint8
}

// key packs the color into a canonical integer used for palette lookups
func (c RGB) key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Palette is an ordered list of distinct colors; the index of a color is its
// pixel value in the encoded stream.
type Palette []RGB

// MarshalBinary returns the palette as consecutive RGB triples
func (p Palette) MarshalBinary() ([]byte, error) {
	data := make([]byte, len(p)*3)
	for i, c := range p {
		data[i*3] = c.R
		data[i*3+1] = c.G
		data[i*3+2] = c.B
	}
	return data, nil
}

// validate checks size and uniqueness and returns the color index
func (p Palette) validate() (map[uint32]uint8, error) {
	if len(p) < 1 || len(p) > maxColors {
		return nil, errors.Wrapf(ErrPaletteSize, "got %d", len(p))
	}
	index := make(map[uint32]uint8, len(p))
	for i, c := range p {
		if j, dup := index[c.key()]; dup {
			return nil, errors.Wrapf(ErrDuplicateColor, "%v at %d and %d", c, j, i)
		}
		index[c.key()] = uint8(i)
	}
	return index, nil
}

// bitsFor returns ceil(log2(n)) for n >= 1
func bitsFor(n int) uint {
	return uint(bits.Len(uint(n - 1)))
}

// colorResolution is the packed-field value describing a palette of n colors.
// The global color table holds 1<<(colorResolution+1) entries.
func colorResolution(n int) uint {
	if b := bitsFor(n); b > 1 {
		return b - 1
	}
	return 0
}

// minCodeSize is the LZW literal width for a palette of n colors.
// Decoders reject code sizes below 2, so one- and two-color palettes use 2.
func minCodeSize(n int) uint {
	if b := bitsFor(n); b > 2 {
		return b
	}
	return 2
}
