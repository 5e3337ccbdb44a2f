package input

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ArnaudCalmettes/seuil/imp"
)

var (
	// ErrTooLarge is returned when a download exceeds the byte limit.
	ErrTooLarge = errors.New("image file is too large")

	// ErrTooManyPixels is returned when an image exceeds the pixel limit.
	ErrTooManyPixels = errors.New("image has too many pixels")
)

// Limits bound the resources spent on a single uploaded image. Zero means
// unlimited.
type Limits struct {
	Bytes  int64
	Pixels int
}

// DefaultLimits accept files up to 20MiB and 40 megapixels.
var DefaultLimits = Limits{
	Bytes:  20 << 20,
	Pixels: 40_000_000,
}

// Fetch downloads an image and decodes it into a buffer.
func Fetch(ctx context.Context, client *http.Client, url string, limits Limits) (*imp.Buffer, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("component", "input").Str("url", url).Msg("downloading attachment")
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("download failed: %s", resp.Status)
	}
	if limits.Bytes > 0 && resp.ContentLength > limits.Bytes {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes", resp.ContentLength)
	}
	return Decode(resp.Body, limits)
}

// Decode reads and decodes an image while enforcing limits.
func Decode(r io.Reader, limits Limits) (*imp.Buffer, error) {
	if limits.Bytes > 0 {
		r = io.LimitReader(r, limits.Bytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	if limits.Bytes > 0 && int64(len(data)) > limits.Bytes {
		return nil, errors.Wrapf(ErrTooLarge, "more than %d bytes", limits.Bytes)
	}

	// Check the header before allocating the whole raster.
	if limits.Pixels > 0 {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			if cfg.Width*cfg.Height > limits.Pixels {
				return nil, errors.Wrapf(ErrTooManyPixels, "%dx%d", cfg.Width, cfg.Height)
			}
		}
	}
	return imp.ReadBytes(data)
}
