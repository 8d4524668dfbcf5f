package preview

import "github.com/lixenwraith/mazegif/gif"

// Recorder collects frames as the writer commits them
type Recorder struct {
	frames []gif.Frame
}

// Observe is the gif.WithFrameObserver callback
func (r *Recorder) Observe(f gif.Frame) {
	r.frames = append(r.frames, f)
}

// Hold is the gif.WithHoldObserver callback; it updates the delay of the
// last recorded frame
func (r *Recorder) Hold(delay uint16) {
	if len(r.frames) > 0 {
		r.frames[len(r.frames)-1].Delay = delay
	}
}

func (r *Recorder) Frames() []gif.Frame { return r.frames }
