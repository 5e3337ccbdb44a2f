package imp

import (
	"context"
	"time"
)

// Result is a thresholded image, ready for download.
type Result struct {
	Buffer  *Buffer
	Level   float64
	Format  Format
	Data    []byte
	Elapsed time.Duration
}

// Filename is the download name of the result.
func (r *Result) Filename() string {
	return Filename(r.Format)
}

// Export thresholds src and encodes the output in format f. Elapsed only
// covers the thresholding itself.
func Export(ctx context.Context, src *Buffer, cfg Config, f Format, workers int, opts ...EncodeOption) (*Result, error) {
	start := time.Now()
	dst, level, err := apply(ctx, src, cfg, workers)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	data, err := EncodeBytes(dst, f, opts...)
	if err != nil {
		return nil, err
	}
	return &Result{
		Buffer:  dst,
		Level:   level,
		Format:  f,
		Data:    data,
		Elapsed: elapsed,
	}, nil
}
