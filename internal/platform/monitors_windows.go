package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"ghosttimer/internal/core/model"
)

const monitorinfofPrimary = 0x1

type winRect struct {
	left, top, right, bottom int32
}

type monitorInfoEx struct {
	cbSize    uint32
	rcMonitor winRect
	rcWork    winRect
	dwFlags   uint32
	szDevice  [32]uint16
}

// queryMonitors enumerates the display monitors and their effective DPI.
func queryMonitors() ([]model.MonitorInfo, error) {
	user32 := syscall.NewLazyDLL("user32.dll")
	shcore := syscall.NewLazyDLL("shcore.dll")
	enumDisplayMonitors := user32.NewProc("EnumDisplayMonitors")
	getMonitorInfo := user32.NewProc("GetMonitorInfoW")
	getDpiForMonitor := shcore.NewProc("GetDpiForMonitor")

	var monitors []model.MonitorInfo

	callback := syscall.NewCallback(func(handle, hdc, rect, lparam uintptr) uintptr {
		info := monitorInfoEx{cbSize: uint32(unsafe.Sizeof(monitorInfoEx{}))}
		ok, _, _ := getMonitorInfo.Call(handle, uintptr(unsafe.Pointer(&info)))
		if ok == 0 {
			return 1 // skip this monitor, keep enumerating
		}

		dpi := uint32(96)
		if getDpiForMonitor.Find() == nil {
			var dpiX, dpiY uint32
			// MDT_EFFECTIVE_DPI = 0
			result, _, _ := getDpiForMonitor.Call(handle, 0,
				uintptr(unsafe.Pointer(&dpiX)), uintptr(unsafe.Pointer(&dpiY)))
			if result == 0 {
				dpi = dpiX
			}
		}

		bounds := info.rcMonitor
		monitors = append(monitors, model.MonitorInfo{
			Handle: fmt.Sprintf("0x%X", handle),
			Bounds: model.Rect{
				X:      int(bounds.left),
				Y:      int(bounds.top),
				Width:  int(bounds.right - bounds.left),
				Height: int(bounds.bottom - bounds.top),
			},
			DPI:         int(dpi),
			ScaleFactor: float64(dpi) / 96.0,
			IsPrimary:   info.dwFlags&monitorinfofPrimary != 0,
		})
		return 1
	})

	ok, _, err := enumDisplayMonitors.Call(0, 0, callback, 0)
	if ok == 0 {
		return nil, fmt.Errorf("enumerate monitors: %w", err)
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("enumerate monitors: none found")
	}
	return monitors, nil
}
