// Package preview plays committed GIF frames back in a terminal.
//
// Frames are captured with a Recorder registered through
// gif.WithFrameObserver and drawn with half-block characters, two image rows
// per terminal row. Large images are sampled down to fit the screen.
package preview
