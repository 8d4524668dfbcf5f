package gif

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Frame describes one committed frame: the changed rectangle, its delay and
// the palette indices of the rectangle in row-major order
type Frame struct {
	Bounds Rect
	Delay  uint16
	Pix    []uint8
}

// Option configures a Writer
type Option func(*Writer)

// WithLoopCount sets the Netscape loop count; 0 loops forever
func WithLoopCount(n uint16) Option {
	return func(w *Writer) { w.loopCount = n }
}

// WithFrameObserver registers fn to receive every committed frame
func WithFrameObserver(fn func(Frame)) Option {
	return func(w *Writer) { w.observers = append(w.observers, fn) }
}

// WithHoldObserver registers fn to receive the new delay of the last frame
// whenever Hold extends it
func WithHoldObserver(fn func(delay uint16)) Option {
	return func(w *Writer) { w.holdObservers = append(w.holdObservers, fn) }
}

// Writer assembles an animated GIF in memory, frame by frame.
// It is not safe for concurrent use.
type Writer struct {
	canvas  *Canvas
	palette Palette
	index   map[uint32]uint8

	litWidth  uint
	loopCount uint16
	observers     []func(Frame)
	holdObservers []func(uint16)

	out       []byte
	frames    int
	lastDelay int // offset of the last frame's delay field, -1 before the first frame
	finalized bool
}

// New validates the geometry and palette and emits the file header
func New(width, height int, palette Palette, opts ...Option) (*Writer, error) {
	if width < 1 || height < 1 || width > maxDimension || height > maxDimension {
		return nil, errors.Wrapf(ErrRange, "canvas %dx%d", width, height)
	}
	index, err := palette.validate()
	if err != nil {
		return nil, err
	}

	w := &Writer{
		canvas:    NewCanvas(width, height),
		palette:   append(Palette(nil), palette...),
		index:     index,
		litWidth:  minCodeSize(len(palette)),
		lastDelay: -1,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.writeHeader()
	return w, nil
}

func (w *Writer) Width() int       { return w.canvas.Width() }
func (w *Writer) Height() int      { return w.canvas.Height() }
func (w *Writer) Palette() Palette { return w.palette }

// Frames returns the number of frames emitted so far
func (w *Writer) Frames() int { return w.frames }

// Len returns the size of the encoded stream without the trailer
func (w *Writer) Len() int { return len(w.out) }

// Canvas exposes the pixel grid for reading
func (w *Writer) Canvas() *Canvas { return w.canvas }

func (w *Writer) writeHeader() {
	res := colorResolution(len(w.palette))

	w.out = append(w.out, signature...)
	w.out = binary.LittleEndian.AppendUint16(w.out, uint16(w.canvas.Width()))
	w.out = binary.LittleEndian.AppendUint16(w.out, uint16(w.canvas.Height()))
	w.out = append(w.out, byte(globalColorTableFlag|res<<4|res))
	// Background color index, pixel aspect ratio
	w.out = append(w.out, 0, 0)

	table, _ := w.palette.MarshalBinary()
	w.out = append(w.out, table...)
	for i := len(w.palette); i < 1<<(res+1); i++ {
		w.out = append(w.out, 0, 0, 0)
	}

	w.out = append(w.out, extensionIntroducer, applicationLabel, applicationSize)
	w.out = append(w.out, netscapeID...)
	w.out = append(w.out, 0x03, 0x01)
	w.out = binary.LittleEndian.AppendUint16(w.out, w.loopCount)
	w.out = append(w.out, blockTerminator)
}

func (w *Writer) lookup(c RGB) (uint8, error) {
	idx, ok := w.index[c.key()]
	if !ok {
		return 0, errors.Wrapf(ErrColorNotFound, "rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return idx, nil
}

// PutPixel paints one cell
func (w *Writer) PutPixel(x, y int, c RGB) error {
	if w.finalized {
		return errors.WithStack(ErrFinalized)
	}
	if !w.canvas.InBounds(x, y) {
		return errors.Wrapf(ErrRange, "pixel (%d,%d) outside %dx%d", x, y, w.canvas.Width(), w.canvas.Height())
	}
	idx, err := w.lookup(c)
	if err != nil {
		return err
	}
	w.canvas.set(x, y, idx)
	return nil
}

// PutRect paints the closed rectangle [x1,x2]×[y1,y2]
func (w *Writer) PutRect(x1, y1, x2, y2 int, c RGB) error {
	if w.finalized {
		return errors.WithStack(ErrFinalized)
	}
	if x1 > x2 || y1 > y2 || !w.canvas.InBounds(x1, y1) || !w.canvas.InBounds(x2, y2) {
		return errors.Wrapf(ErrRange, "rect (%d,%d)-(%d,%d) in %dx%d", x1, y1, x2, y2, w.canvas.Width(), w.canvas.Height())
	}
	idx, err := w.lookup(c)
	if err != nil {
		return err
	}
	w.canvas.fill(Rect{x1, y1, x2, y2}, idx)
	return nil
}

// NextFrame commits pending changes as a frame shown for delay hundredths of
// a second. Without net changes since the last frame it does nothing.
func (w *Writer) NextFrame(delay uint16) error {
	if w.finalized {
		return errors.WithStack(ErrFinalized)
	}
	r, ok := w.canvas.settle()
	if !ok {
		return nil
	}

	// Graphic Control Extension: no transparency, no disposal
	w.out = append(w.out, extensionIntroducer, graphicControlLabel, graphicControlSize, 0x00)
	w.lastDelay = len(w.out)
	w.out = binary.LittleEndian.AppendUint16(w.out, delay)
	w.out = append(w.out, 0x00, blockTerminator)

	// Image Descriptor: no local color table, not interlaced
	w.out = append(w.out, imageSeparator)
	w.out = binary.LittleEndian.AppendUint16(w.out, uint16(r.X1))
	w.out = binary.LittleEndian.AppendUint16(w.out, uint16(r.Y1))
	w.out = binary.LittleEndian.AppendUint16(w.out, uint16(r.Width()))
	w.out = binary.LittleEndian.AppendUint16(w.out, uint16(r.Height()))
	w.out = append(w.out, 0x00)

	w.out = encodeRegion(w.out, w.canvas, r, w.litWidth)
	w.frames++

	if len(w.observers) > 0 {
		f := Frame{Bounds: r, Delay: delay, Pix: w.canvas.region(r)}
		for _, fn := range w.observers {
			fn(f)
		}
	}

	w.canvas.commit()
	return nil
}

// Hold adds delay to the most recently emitted frame, saturating at 65535.
// NextFrame never lengthens a frame on its own; Hold is the explicit way to
// keep an unchanged image on screen longer.
func (w *Writer) Hold(delay uint16) error {
	if w.finalized {
		return errors.WithStack(ErrFinalized)
	}
	if w.lastDelay < 0 {
		return errors.WithStack(ErrNoFrame)
	}
	field := w.out[w.lastDelay : w.lastDelay+2]
	total := uint32(binary.LittleEndian.Uint16(field)) + uint32(delay)
	if total > maxDelay {
		total = maxDelay
	}
	binary.LittleEndian.PutUint16(field, uint16(total))
	for _, fn := range w.holdObservers {
		fn(uint16(total))
	}
	return nil
}

// WriteTo writes the complete file, trailer included, without finalizing.
// A finalized writer no longer holds the stream and returns ErrFinalized.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	if w.finalized {
		return 0, errors.WithStack(ErrFinalized)
	}
	n, err := dst.Write(w.out)
	if err != nil {
		return int64(n), err
	}
	m, err := dst.Write([]byte{trailer})
	return int64(n + m), err
}

// WriteToFile persists the complete file to path. The data is written to a
// temporary file in the same directory and renamed into place, so a failure
// never leaves a partial file behind. After success the writer is finalized.
func (w *Writer) WriteToFile(path string) error {
	if w.finalized {
		return errors.WithStack(ErrFinalized)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WithStack(&PersistError{Op: "create", Path: path, Err: err})
	}
	tmpName := tmp.Name()
	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WithStack(&PersistError{Op: op, Path: path, Err: err})
	}

	if _, err := w.WriteTo(tmp); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WithStack(&PersistError{Op: "close", Path: path, Err: err})
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return errors.WithStack(&PersistError{Op: "chmod", Path: path, Err: err})
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WithStack(&PersistError{Op: "rename", Path: path, Err: err})
	}

	w.finalized = true
	w.out = nil
	return nil
}
