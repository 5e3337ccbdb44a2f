package imp

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ApplyConcurrent is Apply with the pixel passes split into horizontal bands
// processed by up to workers goroutines. The result is identical to Apply's
// whatever the number of workers. If ctx is cancelled before completion, no
// buffer is returned.
func ApplyConcurrent(ctx context.Context, src *Buffer, cfg Config, workers int) (*Buffer, error) {
	dst, _, err := apply(ctx, src, cfg, workers)
	return dst, err
}

func apply(ctx context.Context, src *Buffer, cfg Config, workers int) (*Buffer, float64, error) {
	if err := src.Validate(); err != nil {
		return nil, 0, err
	}
	if !cfg.Method.Valid() {
		return nil, 0, errors.Wrapf(ErrUnsupportedMethod, "%v", cfg.Method)
	}

	level, err := effectiveLevel(ctx, src, cfg, workers)
	if err != nil {
		return nil, 0, err
	}

	// Nothing below checks ctx when the processed region is empty.
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	dst := src.Clone()
	bands := splitRows(processedRegion(cfg.Method, src.Bounds()), workers)
	g, gctx := errgroup.WithContext(ctx)
	for _, band := range bands {
		band := band
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			binarize(src, dst, level, band)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return dst, level, nil
}

func effectiveLevel(ctx context.Context, src *Buffer, cfg Config, workers int) (float64, error) {
	switch cfg.Method {
	case Binary:
		return float64(ClampLevel(cfg.Threshold)), nil
	case OtsuApprox:
		sum, err := concurrentSum(ctx, src, workers)
		if err != nil {
			return 0, err
		}
		return meanFromSum(sum, src.Width*src.Height), nil
	case AdaptiveApprox:
		return float64(ClampLevel(cfg.Threshold)) * adaptiveRatio, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedMethod, "%v", cfg.Method)
}

// concurrentSum adds up R+G+B over the whole buffer. Partial sums are exact
// integers, so the reduction order doesn't matter.
func concurrentSum(ctx context.Context, src *Buffer, workers int) (uint64, error) {
	bands := splitRows(src.Bounds(), workers)
	partial := make([]uint64, len(bands))

	g, gctx := errgroup.WithContext(ctx)
	for i, band := range bands {
		i, band := i, band
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partial[i] = sumRegion(src, band)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var sum uint64
	for _, s := range partial {
		sum += s
	}
	return sum, nil
}

// splitRows cuts r into at most n bands of contiguous rows.
func splitRows(r image.Rectangle, n int) []image.Rectangle {
	if r.Empty() {
		return nil
	}
	rows := r.Dy()
	if n < 1 {
		n = 1
	}
	if n > rows {
		n = rows
	}
	bands := make([]image.Rectangle, 0, n)
	step, extra := rows/n, rows%n
	y := r.Min.Y
	for i := 0; i < n; i++ {
		h := step
		if i < extra {
			h++
		}
		bands = append(bands, image.Rect(r.Min.X, y, r.Max.X, y+h))
		y += h
	}
	return bands
}
