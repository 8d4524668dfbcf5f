package gif

// Rect is a closed axis-aligned rectangle: both corners are inside
type Rect struct {
	X1, Y1, X2, Y2 int
}

func (r Rect) Width() int  { return r.X2 - r.X1 + 1 }
func (r Rect) Height() int { return r.Y2 - r.Y1 + 1 }

// Canvas is a grid of palette indices with a lazily tracked dirty region.
// It also keeps the cell values as of the last commit so a frame can be
// narrowed to the cells that actually differ.
type Canvas struct {
	width, height int
	cells         []uint8
	committed     []uint8

	dirty    Rect
	hasDirty bool
}

// NewCanvas creates a canvas with every cell set to index 0
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:     width,
		height:    height,
		cells:     make([]uint8, width*height),
		committed: make([]uint8, width*height),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Bounds returns the full canvas rectangle
func (c *Canvas) Bounds() Rect {
	return Rect{0, 0, c.width - 1, c.height - 1}
}

// InBounds reports whether (x, y) addresses a cell
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// At returns the index at (x, y); the caller guarantees bounds
func (c *Canvas) At(x, y int) uint8 {
	return c.cells[y*c.width+x]
}

// set writes idx at (x, y) and grows the dirty region when the value changes
func (c *Canvas) set(x, y int, idx uint8) {
	i := y*c.width + x
	if c.cells[i] == idx {
		return
	}
	c.cells[i] = idx
	c.addDiff(x, y)
}

// fill applies set to every cell of r; the caller guarantees r is inside
func (c *Canvas) fill(r Rect, idx uint8) {
	for y := r.Y1; y <= r.Y2; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := r.X1; x <= r.X2; x++ {
			if row[x] != idx {
				row[x] = idx
				c.addDiff(x, y)
			}
		}
	}
}

// Dirty returns the pending change region, if any
func (c *Canvas) Dirty() (Rect, bool) {
	return c.dirty, c.hasDirty
}

func (c *Canvas) addDiff(x, y int) {
	if !c.hasDirty {
		c.dirty = Rect{x, y, x, y}
		c.hasDirty = true
		return
	}
	c.dirty.X1 = min(c.dirty.X1, x)
	c.dirty.Y1 = min(c.dirty.Y1, y)
	c.dirty.X2 = max(c.dirty.X2, x)
	c.dirty.Y2 = max(c.dirty.Y2, y)
}

// settle narrows the dirty region to the cells that differ from the committed
// snapshot. Only cells inside the dirty region are inspected. A cell changed
// and changed back counts as unchanged.
func (c *Canvas) settle() (Rect, bool) {
	if !c.hasDirty {
		return Rect{}, false
	}
	var (
		r     Rect
		found bool
	)
	d := c.dirty
	for y := d.Y1; y <= d.Y2; y++ {
		base := y * c.width
		for x := d.X1; x <= d.X2; x++ {
			if c.cells[base+x] == c.committed[base+x] {
				continue
			}
			if !found {
				r = Rect{x, y, x, y}
				found = true
				continue
			}
			r.X1 = min(r.X1, x)
			r.Y1 = min(r.Y1, y)
			r.X2 = max(r.X2, x)
			r.Y2 = max(r.Y2, y)
		}
	}
	if !found {
		c.hasDirty = false
	}
	return r, found
}

// commit records the current dirty cells as emitted and clears the dirty region
func (c *Canvas) commit() {
	if !c.hasDirty {
		return
	}
	d := c.dirty
	for y := d.Y1; y <= d.Y2; y++ {
		base := y * c.width
		copy(c.committed[base+d.X1:base+d.X2+1], c.cells[base+d.X1:base+d.X2+1])
	}
	c.hasDirty = false
}

// region copies the indices of r in row-major order
func (c *Canvas) region(r Rect) []uint8 {
	out := make([]uint8, 0, r.Width()*r.Height())
	for y := r.Y1; y <= r.Y2; y++ {
		base := y * c.width
		out = append(out, c.cells[base+r.X1:base+r.X2+1]...)
	}
	return out
}
