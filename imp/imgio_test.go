package imp

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 6), G: uint8(y * 8), B: 90, A: 255})
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(7, 6, color.RGBA{R: 0, G: 0, B: 0, A: 0})

	b := FromImage(src)
	require.NoError(t, b.Validate())
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.Equal(t, 4, b.Channels)
	assert.Equal(t, []uint8{10, 20, 30, 255}, b.Pix[:4])
}

func TestBufferImage(t *testing.T) {
	b := uniform(t, 2, 1, 3, 1, 2, 3)
	img := b.Image()
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, []uint8{1, 2, 3, 255, 1, 2, 3, 255}, img.Pix)

	b4 := uniform(t, 1, 1, 4, 9, 8, 7, 6)
	assert.Equal(t, []uint8{9, 8, 7, 6}, b4.Image().Pix)
}

func TestToGray(t *testing.T) {
	b := uniform(t, 1, 1, 4, 30, 60, 91, 255)
	assert.Equal(t, uint8(60), ToGray(b).GrayAt(0, 0).Y)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := FromImage(getTestImage())
	bin, err := Apply(src, DefaultConfig)
	require.NoError(t, err)

	// Binary images survive lossless formats untouched.
	for _, f := range []Format{PNG, WebP} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := EncodeBytes(bin, f)
			require.NoError(t, err)

			got, err := ReadBytes(data)
			require.NoError(t, err)
			assert.Equal(t, bin.Pix, got.Pix)
		})
	}

	t.Run("jpeg", func(t *testing.T) {
		data, err := EncodeBytes(bin, JPEG, JPEGQuality(80))
		require.NoError(t, err)
		got, err := ReadBytes(data)
		require.NoError(t, err)
		assert.Equal(t, bin.Bounds(), got.Bounds())
	})
}

func TestReadWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, getTestImage(), &webp.Options{Quality: 80}))

	b, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, b.Width)
	assert.Equal(t, 30, b.Height)
}

func TestReadErrors(t *testing.T) {
	_, err := ReadBytes([]byte("not an image"))
	assert.True(t, errors.Is(err, ErrDecode))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, getTestImage()))
	_, err = ReadBytes(buf.Bytes()[:buf.Len()/2])
	assert.True(t, errors.Is(err, ErrDecode))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestEncodeErrors(t *testing.T) {
	_, err := EncodeBytes(&Buffer{Width: 1, Height: 1, Channels: 4}, PNG)
	assert.True(t, errors.Is(err, ErrEncoding))

	_, err = EncodeBytes(uniform(t, 1, 1, 4, 0, 0, 0, 0), Format(9))
	assert.True(t, errors.Is(err, ErrEncoding))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{".PNG", PNG},
		{"jpg", JPEG},
		{"jpeg", JPEG},
		{" WebP ", WebP},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("gif")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "thresholded-image.png", Filename(PNG))
	assert.Equal(t, "thresholded-image.jpg", Filename(JPEG))
	assert.Equal(t, "thresholded-image.webp", Filename(WebP))
	assert.Equal(t, "image/webp", WebP.MIMEType())
	assert.Equal(t, []string{"png", "jpg", "webp"}, FormatNames())
}
