package imp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Method selects how the binarization level is derived.
type Method int

const (
	// Binary uses the configured threshold as is.
	Binary Method = iota
	// OtsuApprox uses the mean intensity of the whole image. It is a crude
	// stand-in for Otsu's method: no histogram variance is involved.
	OtsuApprox
	// AdaptiveApprox uses 80% of the configured threshold, and leaves the
	// one-pixel border of the image untouched. The level doesn't vary
	// locally.
	AdaptiveApprox
)

// Methods lists every supported method, in presentation order.
var Methods = []Method{Binary, OtsuApprox, AdaptiveApprox}

// adaptiveRatio scales the threshold used by AdaptiveApprox.
const adaptiveRatio = 0.8

var methodInfo = map[Method]struct {
	name, title, desc, about string
}{
	Binary: {
		"binary", "Binary",
		"Simple threshold using a fixed value",
		"Pixels whose average intensity is above the threshold become white, the others become black.",
	},
	OtsuApprox: {
		"otsu", "Otsu",
		"Automatically determines optimal threshold",
		"The threshold is the mean intensity of the whole image; the configured value is ignored.",
	},
	AdaptiveApprox: {
		"adaptive", "Adaptive",
		"Varies threshold across the image",
		"The threshold is scaled down to 80% and applied to every pixel but the one-pixel border.",
	},
}

// Valid is true for members of the closed set of methods.
func (m Method) Valid() bool {
	_, ok := methodInfo[m]
	return ok
}

func (m Method) String() string {
	if info, ok := methodInfo[m]; ok {
		return info.name
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

// Title is the human readable name of the method.
func (m Method) Title() string {
	return methodInfo[m].title
}

// Description is a one-line summary of the method.
func (m Method) Description() string {
	return methodInfo[m].desc
}

// About explains what the method actually does to pixels.
func (m Method) About() string {
	return methodInfo[m].about
}

// ParseMethod finds a method from its name (case insensitive).
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range Methods {
		if methodInfo[m].name == name {
			return m, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedMethod, "%q", name)
}

// MethodNames returns the names accepted by ParseMethod.
func MethodNames() []string {
	names := make([]string, 0, len(Methods))
	for _, m := range Methods {
		names = append(names, m.String())
	}
	return names
}

