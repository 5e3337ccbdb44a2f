package imp

import (
	"image"

	"github.com/pkg/errors"
)

// Buffer is a rectangular grid of interleaved 8 bit pixels, either R,G,B or
// R,G,B,A. Rows are packed: there's no stride padding.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	b := &Buffer{Width: width, Height: height, Channels: channels}
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidInput, "dimensions %dx%d", width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, errors.Wrapf(ErrInvalidInput, "%d channels", channels)
	}
	b.Pix = make([]uint8, width*height*channels)
	return b, nil
}

// Validate checks that the buffer is non-empty and consistent.
func (b *Buffer) Validate() error {
	switch {
	case b == nil:
		return errors.Wrap(ErrInvalidInput, "nil buffer")
	case b.Width < 1 || b.Height < 1:
		return errors.Wrapf(ErrInvalidInput, "dimensions %dx%d", b.Width, b.Height)
	case b.Channels != 3 && b.Channels != 4:
		return errors.Wrapf(ErrInvalidInput, "%d channels", b.Channels)
	case len(b.Pix) != b.Width*b.Height*b.Channels:
		return errors.Wrapf(ErrInvalidInput, "%d bytes of pixel data for %dx%dx%d",
			len(b.Pix), b.Width, b.Height, b.Channels)
	}
	return nil
}

// Bounds returns the buffer's rectangle, anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// HasAlpha is true for 4 channel buffers.
func (b *Buffer) HasAlpha() bool {
	return b.Channels == 4
}

// PixOffset returns the index of the first channel of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Pix = make([]uint8, len(b.Pix))
	copy(c.Pix, b.Pix)
	return &c
}
