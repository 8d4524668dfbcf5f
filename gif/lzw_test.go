package gif

import (
	"bytes"
	"compress/lzw"
	"io"
	"math/rand"
	"testing"
)

func compress(syms []uint8, litWidth uint) []byte {
	var bits BitPacker
	e := newLZWEncoder(&bits, litWidth)
	for _, s := range syms {
		e.write(s)
	}
	e.close()
	return bits.Bytes()
}

func decompress(t *testing.T, data []byte, litWidth uint) []byte {
	t.Helper()
	r := lzw.NewReader(bytes.NewReader(data), lzw.LSB, int(litWidth))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to decode LZW stream: %v", err)
	}
	return out
}

func TestLZWKnownCodes(t *testing.T) {
	// codes 0, 6, 0 at 3 bits, then the end code 5 at 4 bits once code 8 is assigned
	got := compress([]uint8{0, 0, 0, 0}, 2)
	want := []byte{0x30, 0x0A}
	if !bytes.Equal(got, want) {
		t.Errorf("Expected %x, got %x", want, got)
	}
}

func TestLZWSingleSymbol(t *testing.T) {
	got := decompress(t, compress([]uint8{3}, 2), 2)
	if !bytes.Equal(got, []byte{3}) {
		t.Errorf("Expected [3], got %v", got)
	}
}

func TestLZWRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name     string
		litWidth uint
		colors   int
		size     int
		runs     bool
	}{
		{"two colors", 2, 2, 1000, true},
		{"three colors noisy", 2, 3, 5000, false},
		{"sixteen colors", 4, 16, 20000, true},
		{"full palette noisy", 8, 256, 200000, false},
		{"full palette runs", 8, 256, 200000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syms := make([]uint8, tt.size)
			cur := uint8(0)
			for i := range syms {
				if !tt.runs || rng.Intn(8) == 0 {
					cur = uint8(rng.Intn(tt.colors))
				}
				syms[i] = cur
			}

			got := decompress(t, compress(syms, tt.litWidth), tt.litWidth)
			if !bytes.Equal(got, syms) {
				t.Fatalf("Round trip mismatch: %d symbols in, %d out", len(syms), len(got))
			}
		})
	}
}

func TestLZWResetsAtCodeCeiling(t *testing.T) {
	var bits BitPacker
	e := newLZWEncoder(&bits, 8)
	rng := rand.New(rand.NewSource(7))

	resets := 0
	prevHi := e.hi
	for i := 0; i < 100000; i++ {
		e.write(uint8(rng.Intn(256)))
		if e.width > maxCodeWidth {
			t.Fatalf("Code width exceeded %d bits", maxCodeWidth)
		}
		if e.hi < prevHi {
			resets++
		}
		prevHi = e.hi
	}
	e.close()

	if resets == 0 {
		t.Error("Expected the dictionary to reset at least once")
	}
}

func TestEncodeRegionFraming(t *testing.T) {
	c := NewCanvas(4, 4)
	c.fill(Rect{1, 1, 2, 3}, 1)

	r := Rect{1, 1, 2, 3}
	out := encodeRegion(nil, c, r, 2)

	if out[0] != 2 {
		t.Errorf("Expected min code size 2, got %d", out[0])
	}
	if out[len(out)-1] != blockTerminator {
		t.Error("Expected block terminator at end of image data")
	}
	n := int(out[1])
	if n != len(out)-3 {
		t.Fatalf("Expected one sub-block of %d bytes, got length byte %d", len(out)-3, n)
	}

	got := decompress(t, out[2:2+n], 2)
	want := []byte{1, 1, 1, 1, 1, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
