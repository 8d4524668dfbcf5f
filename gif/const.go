package gif

// Block introducers and labels
const (
	extensionIntroducer = 0x21
	graphicControlLabel = 0xF9
	applicationLabel    = 0xFF
	imageSeparator      = 0x2C
	trailer             = 0x3B
	blockTerminator     = 0x00

	graphicControlSize = 0x04
	applicationSize    = 0x0B
)

const (
	signature = "GIF89a"

	// netscapeID identifies the looping application extension
	netscapeID = "NETSCAPE2.0"

	// maxSubBlock is the largest payload of a single data sub-block
	maxSubBlock = 255

	// maxCodeWidth is the GIF ceiling on LZW code length
	maxCodeWidth = 12

	// maxCode is the last code that may be assigned before the table must be reset
	maxCode = 1<<maxCodeWidth - 1

	// maxColors is the largest global color table GIF can describe
	maxColors = 256

	// maxDimension bounds width, height and offsets (unsigned 16-bit fields)
	maxDimension = 1<<16 - 1

	// maxDelay is the longest frame delay in hundredths of a second
	maxDelay = 1<<16 - 1
)

// globalColorTableFlag is bit 7 of the logical screen packed byte:
//
//	bits 0-2  global color table size, entries = 1 << (size+1)
//	bit  3    sort flag, always 0
//	bits 4-6  color resolution
//	bit  7    global color table flag, always 1
const globalColorTableFlag = 0x80
