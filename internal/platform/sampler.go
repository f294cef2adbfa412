package platform

import (
	"errors"

	"ghosttimer/internal/core/display"
)

// ErrSamplingUnsupported indicates screen pixel sampling is not available
// on this system.
var ErrSamplingUnsupported = errors.New("background sampling unsupported")

// NewPixelSampler returns a platform-specific screen pixel sampler, or
// ErrSamplingUnsupported where none exists.
func NewPixelSampler() (display.Sampler, error) {
	return newPixelSampler()
}
