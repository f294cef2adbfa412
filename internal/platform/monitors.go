package platform

import (
	"errors"

	"ghosttimer/internal/core/model"
)

// ErrMonitorsUnsupported indicates monitor enumeration is not available on
// this system.
var ErrMonitorsUnsupported = errors.New("monitor enumeration unsupported")

// QueryMonitors returns the current monitor layout.
func QueryMonitors() ([]model.MonitorInfo, error) {
	return queryMonitors()
}
