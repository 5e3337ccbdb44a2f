package imp

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned for empty or malformed buffers.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedMethod is returned when a config names an unknown method.
	ErrUnsupportedMethod = errors.New("unsupported method")

	// ErrUnsupportedFormat is returned when a format name can't be parsed.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDecode wraps every failure of the image decoder.
	ErrDecode = errors.New("decode error")

	// ErrEncoding wraps every failure of the image encoders.
	ErrEncoding = errors.New("encoding error")
)
