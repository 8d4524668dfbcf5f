package gif

import (
	"bytes"
	"testing"
)

func TestBitPackerLSBFirst(t *testing.T) {
	var p BitPacker
	p.Append(0x4, 3) // 100
	p.Append(0x1, 3) // 001
	p.Append(0x5, 3) // 101

	// byte 0 holds 100, 001 and the low two bits of 101; byte 1 its top bit
	want := []byte{0x4C, 0x01}
	if !bytes.Equal(p.Bytes(), want) {
		t.Errorf("Expected %x, got %x", want, p.Bytes())
	}
	if p.Len() != 9 {
		t.Errorf("Expected 9 bits, got %d", p.Len())
	}
}

func TestBitPackerTruncatesWideValues(t *testing.T) {
	var a, b BitPacker
	a.Append(0xFF, 3)
	b.Append(0x7, 3)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("Expected truncation to low bits: %x vs %x", a.Bytes(), b.Bytes())
	}
}

func TestBitPackerSpansBytes(t *testing.T) {
	var p BitPacker
	p.Append(0x1, 1)
	p.Append(0xABC, 12)
	// 0xABC<<1 | 1 = 0x1579
	want := []byte{0x79, 0x15}
	if !bytes.Equal(p.Bytes(), want) {
		t.Errorf("Expected %x, got %x", want, p.Bytes())
	}

	p.Reset()
	if p.Len() != 0 || len(p.Bytes()) != 0 {
		t.Errorf("Expected empty packer after Reset, got %d bits", p.Len())
	}
}

func TestSubBlocks(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		blocks []int
	}{
		{"empty", 0, nil},
		{"single byte", 1, []int{1}},
		{"exactly one block", 255, []int{255}},
		{"one over", 256, []int{255, 1}},
		{"several", 255*3 + 17, []int{255, 255, 255, 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p BitPacker
			for i := 0; i < tt.size; i++ {
				p.Append(uint32(i), 8)
			}
			out := p.AppendSubBlocks(nil)

			var got []int
			var payload []byte
			for rest := out; len(rest) > 0; {
				n := int(rest[0])
				if n == 0 || n > len(rest)-1 {
					t.Fatalf("Invalid block length %d with %d bytes left", n, len(rest)-1)
				}
				got = append(got, n)
				payload = append(payload, rest[1:1+n]...)
				rest = rest[1+n:]
			}

			if len(got) != len(tt.blocks) {
				t.Fatalf("Expected blocks %v, got %v", tt.blocks, got)
			}
			for i := range got {
				if got[i] != tt.blocks[i] {
					t.Errorf("Block %d: expected %d bytes, got %d", i, tt.blocks[i], got[i])
				}
			}
			if !bytes.Equal(payload, p.Bytes()) {
				t.Error("Expected sub-block payload to match packed bytes")
			}
		})
	}
}
