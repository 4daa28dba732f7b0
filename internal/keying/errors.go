package keying

import "errors"

// Errors reported by the keying core and the collaborators that feed it.
// Callers test for them with errors.Is; the returned errors usually wrap one
// of these with additional context.
var (
	// ErrNoImageLoaded is returned when a pass is requested without a
	// decoded source buffer.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrInvalidRange is returned when a threshold field or preset name
	// cannot be interpreted.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidMode is returned for a pass mode other than whiteout or
	// preserve-colour.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrDecode is returned when a source file cannot be decoded to RGBA.
	ErrDecode = errors.New("decode error")

	// ErrEncode is returned when a result cannot be encoded for saving.
	ErrEncode = errors.New("encode error")

	// ErrIO is returned when a file cannot be read or written.
	ErrIO = errors.New("i/o error")
)
