package models

import (
	"fmt"

	"github.com/ArnaudCalmettes/seuil/imp"
)

// Settings is the user-selectable part of a thresholding request: the
// method, its threshold and the format of the download.
type Settings struct {
	Method    string
	Threshold int
	Format    string
}

// DefaultSettings mirrors imp.DefaultConfig with a PNG download.
var DefaultSettings = Settings{
	Method:    imp.DefaultConfig.Method.String(),
	Threshold: imp.DefaultConfig.Threshold,
	Format:    imp.PNG.Extension(),
}

func (s Settings) String() string {
	return fmt.Sprintf("method=%s, threshold=%d, format=%s", s.Method, s.Threshold, s.Format)
}

// Resolve parses the settings into an engine configuration and an output
// format.
func (s Settings) Resolve() (imp.Config, imp.Format, error) {
	m, err := imp.ParseMethod(s.Method)
	if err != nil {
		return imp.Config{}, 0, err
	}
	f, err := imp.ParseFormat(s.Format)
	if err != nil {
		return imp.Config{}, 0, err
	}
	return imp.Config{Method: m, Threshold: imp.ClampLevel(s.Threshold)}, f, nil
}

// Override holds the fields of a request that replace saved settings.
type Override struct {
	Method    string
	Threshold *int
	Format    string
}

// IsZero is true when the override changes nothing.
func (o Override) IsZero() bool {
	return o.Method == "" && o.Threshold == nil && o.Format == ""
}

// Merge returns s with the fields set in o replaced.
func (s Settings) Merge(o Override) Settings {
	if o.Method != "" {
		s.Method = o.Method
	}
	if o.Threshold != nil {
		s.Threshold = *o.Threshold
	}
	if o.Format != "" {
		s.Format = o.Format
	}
	return s
}
