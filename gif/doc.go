// Package gif incrementally encodes animated GIF89a files.
//
// A Writer owns a fixed-size indexed canvas. Callers paint with PutPixel and
// PutRect, commit frames with NextFrame, and persist the result once with
// WriteToFile. Each committed frame only carries the smallest rectangle that
// changed since the previous frame, LZW-compressed with a fresh dictionary.
//
// Format reference: https://www.w3.org/Graphics/GIF/spec-gif89a.txt
package gif
