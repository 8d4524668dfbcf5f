package gif

const noCode = -1

// lzwEncoder is a GIF-flavored LZW compressor feeding a BitPacker.
// The dictionary maps prefixCode<<8|symbol to the code of the extended
// sequence, so every sequence is identified by its prefix and last symbol.
type lzwEncoder struct {
	bits *BitPacker

	litWidth uint
	width    uint
	clear    int
	end      int
	hi       int // most recently assigned code

	table  map[uint32]int
	prefix int // code of the sequence matched so far
}

func newLZWEncoder(bits *BitPacker, litWidth uint) *lzwEncoder {
	e := &lzwEncoder{
		bits:     bits,
		litWidth: litWidth,
		clear:    1 << litWidth,
		prefix:   noCode,
	}
	e.end = e.clear + 1
	e.reset()
	return e
}

// reset restores the initial dictionary of literal codes
func (e *lzwEncoder) reset() {
	e.width = e.litWidth + 1
	e.hi = e.end
	e.table = make(map[uint32]int, 1<<e.width)
}

func (e *lzwEncoder) emit(code int) {
	e.bits.Append(uint32(code), e.width)
}

// advance assigns the next code and reports whether it can enter the table.
// The width grows once the assigned code no longer fits; at the 12-bit
// ceiling a clear code is emitted and the dictionary starts over.
func (e *lzwEncoder) advance() bool {
	e.hi++
	if e.hi == 1<<e.width {
		e.width++
	}
	if e.hi == maxCode {
		e.emit(e.clear)
		e.reset()
		return false
	}
	return true
}

func (e *lzwEncoder) write(sym uint8) {
	if e.prefix == noCode {
		e.prefix = int(sym)
		return
	}
	key := uint32(e.prefix)<<8 | uint32(sym)
	if code, ok := e.table[key]; ok {
		e.prefix = code
		return
	}
	e.emit(e.prefix)
	if e.advance() {
		e.table[key] = e.hi
	}
	e.prefix = int(sym)
}

// close flushes the pending sequence and writes the end code
func (e *lzwEncoder) close() {
	if e.prefix != noCode {
		e.emit(e.prefix)
		e.advance()
		e.prefix = noCode
	}
	e.emit(e.end)
}

// encodeRegion appends the image data of r to dst: the minimum code size
// byte, the LZW stream as sub-blocks and the block terminator. Pixels are
// scanned row by row, left to right.
func encodeRegion(dst []byte, c *Canvas, r Rect, litWidth uint) []byte {
	var bits BitPacker
	e := newLZWEncoder(&bits, litWidth)
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			e.write(c.At(x, y))
		}
	}
	e.close()

	dst = append(dst, byte(litWidth))
	dst = bits.AppendSubBlocks(dst)
	return append(dst, blockTerminator)
}
