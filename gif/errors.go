package gif

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrColorNotFound  = errors.New("gif: color not in palette")
	ErrRange          = errors.New("gif: coordinates out of range")
	ErrPaletteSize    = errors.New("gif: palette must hold between 1 and 256 colors")
	ErrDuplicateColor = errors.New("gif: duplicate palette color")
	ErrFinalized      = errors.New("gif: writer already finalized")
	ErrNoFrame        = errors.New("gif: no frame committed yet")
	ErrIO             = errors.New("gif: persist failed")
)

// PersistError reports a failed write of the encoded stream.
// It matches ErrIO and unwraps to the underlying OS error.
type PersistError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("gif: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool { return target == ErrIO }
