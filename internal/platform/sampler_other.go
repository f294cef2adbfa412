//go:build !windows

package platform

import "ghosttimer/internal/core/display"

func newPixelSampler() (display.Sampler, error) {
	return nil, ErrSamplingUnsupported
}
