package input

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArnaudCalmettes/seuil/imp"
)

func getPNGBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	img.SetGray(0, 0, color.Gray{Y: 200})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func serve(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := serve(t, http.StatusOK, getPNGBytes(t, 12, 8))

	b, err := Fetch(context.Background(), srv.Client(), srv.URL, DefaultLimits)
	require.NoError(t, err)
	assert.Equal(t, 12, b.Width)
	assert.Equal(t, 8, b.Height)
	assert.Equal(t, []uint8{200, 200, 200, 255}, b.Pix[:4])
}

func TestFetchErrors(t *testing.T) {
	data := getPNGBytes(t, 12, 8)

	tests := []struct {
		name   string
		status int
		body   []byte
		limits Limits
		want   error
	}{
		{"too large", http.StatusOK, data, Limits{Bytes: 10}, ErrTooLarge},
		{"too many pixels", http.StatusOK, data, Limits{Pixels: 95}, ErrTooManyPixels},
		{"not an image", http.StatusOK, []byte("hello"), DefaultLimits, imp.ErrDecode},
		{"not found", http.StatusNotFound, nil, DefaultLimits, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			b, err := Fetch(context.Background(), srv.Client(), srv.URL, tt.limits)
			assert.Nil(t, b)
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
		})
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := serve(t, http.StatusOK, getPNGBytes(t, 2, 2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, srv.Client(), srv.URL, DefaultLimits)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeUnlimited(t *testing.T) {
	b, err := Decode(bytes.NewReader(getPNGBytes(t, 3, 3)), Limits{})
	require.NoError(t, err)
	assert.Equal(t, 3, b.Width)
}
