package gif

// BitPacker accumulates variable-width codes least-significant bit first
type BitPacker struct {
	buf   []byte
	nbits int
}

// Append pushes the low width bits of value. Higher bits are discarded.
func (p *BitPacker) Append(value uint32, width uint) {
	if width < 32 {
		value &= 1<<width - 1
	}
	for width > 0 {
		off := uint(p.nbits % 8)
		if off == 0 {
			p.buf = append(p.buf, 0)
		}
		n := 8 - off
		if n > width {
			n = width
		}
		p.buf[len(p.buf)-1] |= byte(value&(1<<n-1)) << off
		value >>= n
		width -= n
		p.nbits += int(n)
	}
}

// Len returns the number of bits appended since the last Reset
func (p *BitPacker) Len() int { return p.nbits }

// Bytes returns the packed bytes; the final byte is zero-padded
func (p *BitPacker) Bytes() []byte { return p.buf }

func (p *BitPacker) Reset() {
	p.buf = p.buf[:0]
	p.nbits = 0
}

// AppendSubBlocks appends the packed bytes to dst as length-prefixed data
// sub-blocks of at most 255 bytes. The zero-length terminator is left to the
// caller.
func (p *BitPacker) AppendSubBlocks(dst []byte) []byte {
	rest := p.buf
	for len(rest) > maxSubBlock {
		dst = append(dst, maxSubBlock)
		dst = append(dst, rest[:maxSubBlock]...)
		rest = rest[maxSubBlock:]
	}
	if len(rest) > 0 {
		dst = append(dst, byte(len(rest)))
		dst = append(dst, rest...)
	}
	return dst
}
