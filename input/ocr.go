package input

import (
	"bytes"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"

	"github.com/ArnaudCalmettes/seuil/imp"
)

// DefaultLanguage is the tesseract language used when none is given.
const DefaultLanguage = "eng"

// Text reads the text contained in a (preferably binarized) image.
func Text(bin *imp.Buffer, lang string) (string, error) {
	if err := bin.Validate(); err != nil {
		return "", err
	}
	if lang == "" {
		lang = DefaultLanguage
	}

	var b bytes.Buffer
	if err := png.Encode(&b, imp.ToGray(bin)); err != nil {
		return "", errors.Wrap(imp.ErrEncoding, err.Error())
	}

	ocr := gosseract.NewClient()
	defer ocr.Close()
	if err := ocr.SetLanguage(lang); err != nil {
		return "", errors.Wrap(err, "ocr")
	}
	if err := ocr.SetImageFromBytes(b.Bytes()); err != nil {
		return "", errors.Wrap(err, "ocr")
	}
	txt, err := ocr.Text()
	if err != nil {
		return "", errors.Wrap(err, "ocr")
	}
	return strings.TrimSpace(txt), nil
}
