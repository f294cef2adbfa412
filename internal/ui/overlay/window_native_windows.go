//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"

	"ghosttimer/internal/core/model"
)

const (
	gwlExStyle  int32 = -20
	wsExLayered       = 0x00080000
	lwaAlpha          = 0x2

	hwndTopmost   = ^uintptr(0)     // -1
	hwndNoTopmost = ^uintptr(0) - 1 // -2

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

var (
	user32DLL                      = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtrW          = user32DLL.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32DLL.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32DLL.NewProc("SetLayeredWindowAttributes")
	procSetWindowPos               = user32DLL.NewProc("SetWindowPos")
)

// applyNativeOpacity sets whole-window alpha through the layered window
// style.
func (overlay *Window) applyNativeOpacity(alpha uint8) {
	overlay.withHWND(func(hwnd uintptr) {
		style, _, _ := procGetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle))
		if style&wsExLayered == 0 {
			procSetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle), style|wsExLayered)
		}
		procSetLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	})
}

// applyNativePosition moves the window to the given logical screen point.
func (overlay *Window) applyNativePosition(position model.Point) {
	overlay.withHWND(func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, 0,
			uintptr(int32(position.X)), uintptr(int32(position.Y)),
			0, 0, swpNoSize|swpNoActivate)
	})
}

// applyNativeTopmost pins or unpins the window in the topmost band.
func (overlay *Window) applyNativeTopmost(topmost bool) {
	insertAfter := hwndNoTopmost
	if topmost {
		insertAfter = hwndTopmost
	}
	overlay.withHWND(func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, insertAfter, 0, 0, 0, 0,
			swpNoSize|swpNoMove|swpNoActivate)
	})
}

func (overlay *Window) withHWND(action func(hwnd uintptr)) {
	nativeWindow, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}
		action(hwnd)
	})
}

func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}
