package imp

import (
	"context"
	"image"

	"github.com/pkg/errors"
)

// Black and white pixel values produced by binarization.
const (
	Black uint8 = 0
	White uint8 = 255
)

// Config selects a method and its threshold. Threshold is clamped to
// [MinLevel, MaxLevel] before use.
type Config struct {
	Method    Method
	Threshold int
}

// DefaultConfig is binary thresholding at mid-gray.
var DefaultConfig = Config{Method: Binary, Threshold: 127}

// Apply thresholds src and returns a new buffer of the same geometry. Color
// channels of the processed region are either Black or White, alpha is left
// as is. src is never modified.
func Apply(src *Buffer, cfg Config) (*Buffer, error) {
	return ApplyConcurrent(context.Background(), src, cfg, 1)
}

// EffectiveLevel returns the level against which each pixel's average
// intensity is compared for the given config.
func EffectiveLevel(src *Buffer, cfg Config) (float64, error) {
	if err := src.Validate(); err != nil {
		return 0, err
	}
	return effectiveLevel(context.Background(), src, cfg, 1)
}

// MeanIntensity returns the average pixel intensity of the whole buffer.
// This is the level used by OtsuApprox.
func MeanIntensity(src *Buffer) (float64, error) {
	if err := src.Validate(); err != nil {
		return 0, err
	}
	return meanFromSum(sumRegion(src, src.Bounds()), src.Width*src.Height), nil
}

// Binarize writes the binary rule's result for every pixel of r into dst:
// white when the average intensity of the pixel in src is strictly above
// level, black otherwise. Alpha is copied from src.
func Binarize(src, dst *Buffer, level float64, r image.Rectangle) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if src.Bounds() != dst.Bounds() || src.Channels != dst.Channels {
		return errors.Wrap(ErrInvalidInput, "src and dst should have the same geometry")
	}
	binarize(src, dst, level, r.Intersect(src.Bounds()))
	return nil
}

// processedRegion returns the part of the image the method writes to.
func processedRegion(m Method, bounds image.Rectangle) image.Rectangle {
	if m == AdaptiveApprox {
		// No interior pixels: nothing gets processed.
		if bounds.Dx() < 3 || bounds.Dy() < 3 {
			return image.Rectangle{}
		}
		return bounds.Inset(1)
	}
	return bounds
}

func binarize(src, dst *Buffer, level float64, r image.Rectangle) {
	ch := src.Channels
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := src.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+ch {
			v := Black
			if intensity(src.Pix[i], src.Pix[i+1], src.Pix[i+2]) > level {
				v = White
			}
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = v, v, v
			if src.HasAlpha() {
				dst.Pix[i+3] = src.Pix[i+3]
			}
		}
	}
}

func sumRegion(src *Buffer, r image.Rectangle) uint64 {
	var sum uint64
	ch := src.Channels
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := src.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+ch {
			sum += uint64(channelSum(src.Pix[i], src.Pix[i+1], src.Pix[i+2]))
		}
	}
	return sum
}

// meanFromSum divides once, so that a flat image's mean is exactly the
// intensity of its pixels.
func meanFromSum(sum uint64, pixels int) float64 {
	if pixels == 0 {
		return 0
	}
	return float64(sum) / (3 * float64(pixels))
}
