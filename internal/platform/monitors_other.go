//go:build !windows

package platform

import "ghosttimer/internal/core/model"

func queryMonitors() ([]model.MonitorInfo, error) {
	return nil, ErrMonitorsUnsupported
}
