package imp

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	src := noise(t, 24, 24, 4, 8)
	cfg := Config{Method: OtsuApprox}

	res, err := Export(context.Background(), src, cfg, WebP, 4)
	require.NoError(t, err)
	assert.Equal(t, "thresholded-image.webp", res.Filename())
	mean, err := MeanIntensity(src)
	require.NoError(t, err)
	assert.Equal(t, mean, res.Level)

	want, err := Apply(src, cfg)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, res.Buffer.Pix)

	decoded, err := ReadBytes(res.Data)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
}

func TestExportErrors(t *testing.T) {
	src := noise(t, 4, 4, 4, 8)

	_, err := Export(context.Background(), src, Config{Method: Method(-1)}, PNG, 1)
	assert.True(t, errors.Is(err, ErrUnsupportedMethod))

	_, err = Export(context.Background(), src, DefaultConfig, Format(12), 1)
	assert.True(t, errors.Is(err, ErrEncoding))

	_, err = Export(context.Background(), &Buffer{}, DefaultConfig, PNG, 1)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
