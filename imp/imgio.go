package imp

import (
	"bytes"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ReadFile reads an image from a file.
func ReadFile(filename string) (*Buffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	defer f.Close()

	return Read(f)
}

// ReadBytes reads an image from raw bytes.
func ReadBytes(data []byte) (*Buffer, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image from a reader. EXIF
// orientation is applied to JPEG images.
func Read(r io.Reader) (b *Buffer, err error) {
	defer func() {
		// Some decoders panic on truncated input.
		if p := recover(); p != nil {
			b, err = nil, errors.Wrapf(ErrDecode, "%v", p)
		}
	}()

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	b = FromImage(img)
	if err := b.Validate(); err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	return b, nil
}

type encodeConfig struct {
	jpegQuality  int
	webpQuality  float32
	webpLossless bool
}

var defaultEncodeConfig = encodeConfig{
	jpegQuality:  95,
	webpQuality:  90,
	webpLossless: true,
}

// EncodeOption sets an optional parameter for Encode.
type EncodeOption func(*encodeConfig)

// JPEGQuality sets the JPEG quality, from 1 to 100.
func JPEGQuality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.jpegQuality = quality
	}
}

// WebPQuality sets the quality of lossy WebP output, from 0 to 100.
func WebPQuality(quality float32) EncodeOption {
	return func(c *encodeConfig) {
		c.webpQuality = quality
	}
}

// WebPLossless toggles lossless WebP compression.
func WebPLossless(lossless bool) EncodeOption {
	return func(c *encodeConfig) {
		c.webpLossless = lossless
	}
}

// Encode writes the buffer to w in the given format.
func Encode(w io.Writer, b *Buffer, f Format, opts ...EncodeOption) error {
	if err := b.Validate(); err != nil {
		return errors.Wrap(ErrEncoding, err.Error())
	}
	if !f.Valid() {
		return errors.Wrapf(ErrEncoding, "unsupported format %v", f)
	}
	cfg := defaultEncodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var err error
	img := b.Image()
	switch f {
	case PNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(cfg.jpegQuality))
	case WebP:
		err = webp.Encode(w, img, &webp.Options{
			Lossless: cfg.webpLossless,
			Quality:  cfg.webpQuality,
		})
	}
	if err != nil {
		return errors.Wrapf(ErrEncoding, "%v: %v", f, err)
	}
	return nil
}

// EncodeBytes encodes the buffer into a new byte slice.
func EncodeBytes(b *Buffer, f Format, opts ...EncodeOption) ([]byte, error) {
	var out bytes.Buffer
	if err := Encode(&out, b, f, opts...); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
