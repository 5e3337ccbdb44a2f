package imp

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// FromImage converts any image into a 4 channel, non-premultiplied buffer of
// the same size.
func FromImage(src image.Image) *Buffer {
	nrgba := imaging.Clone(src)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	b := &Buffer{Width: w, Height: h, Channels: 4, Pix: make([]uint8, w*h*4)}
	for y := 0; y < h; y++ {
		copy(b.Pix[y*w*4:(y+1)*w*4], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+w*4])
	}
	return b
}

// Image exposes the buffer as a standard library image. 3 channel buffers
// are made opaque.
func (b *Buffer) Image() *image.NRGBA {
	dst := image.NewNRGBA(b.Bounds())
	if b.Channels == 4 {
		copy(dst.Pix, b.Pix)
		return dst
	}
	for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+4 {
		dst.Pix[j] = b.Pix[i]
		dst.Pix[j+1] = b.Pix[i+1]
		dst.Pix[j+2] = b.Pix[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}

// ToGray converts a buffer into a grayscale picture of the same size.
func ToGray(b *Buffer) *image.Gray {
	dst := image.NewGray(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := b.PixOffset(x, y)
			dst.SetGray(x, y, color.Gray{Y: uint8(intensity(b.Pix[i], b.Pix[i+1], b.Pix[i+2]) + 0.5)})
		}
	}
	return dst
}
