package imp

import (
	"strings"

	"github.com/pkg/errors"
)

// Format is an output container format.
type Format int

const (
	PNG Format = iota
	JPEG
	WebP
)

// Formats lists every supported output format.
var Formats = []Format{PNG, JPEG, WebP}

// DownloadBase is the base name of exported files.
const DownloadBase = "thresholded-image"

var formatInfo = map[Format]struct {
	name, ext, mime string
}{
	PNG:  {"png", "png", "image/png"},
	JPEG: {"jpeg", "jpg", "image/jpeg"},
	WebP: {"webp", "webp", "image/webp"},
}

func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return "Format(?)"
}

// Valid is true for members of the closed set of formats.
func (f Format) Valid() bool {
	_, ok := formatInfo[f]
	return ok
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	return formatInfo[f].ext
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	return formatInfo[f].mime
}

// ParseFormat finds a format from its name or extension, with or without a
// leading dot.
func ParseFormat(name string) (Format, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	switch name {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}

// FormatNames returns the canonical format names.
func FormatNames() []string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, f.Extension())
	}
	return names
}

// Filename returns the download name of an image exported in format f.
func Filename(f Format) string {
	return DownloadBase + "." + f.Extension()
}
