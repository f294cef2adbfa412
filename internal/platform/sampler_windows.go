package platform

import (
	"fmt"
	"syscall"

	"ghosttimer/internal/core/display"
	"ghosttimer/internal/core/model"
)

const clrInvalid = 0xFFFFFFFF

type pixelSampler struct{}

func newPixelSampler() (display.Sampler, error) {
	return &pixelSampler{}, nil
}

// Sample reads the screen color at the top-left of the rectangle via GDI.
func (sampler *pixelSampler) Sample(rect model.Rect) (model.Color, error) {
	user32 := syscall.NewLazyDLL("user32.dll")
	gdi32 := syscall.NewLazyDLL("gdi32.dll")

	getDC := user32.NewProc("GetDC")
	releaseDC := user32.NewProc("ReleaseDC")
	getPixel := gdi32.NewProc("GetPixel")

	hdc, _, err := getDC.Call(0)
	if hdc == 0 {
		return model.Color{}, fmt.Errorf("get screen dc: %w", err)
	}
	defer releaseDC.Call(0, hdc)

	colorRef, _, _ := getPixel.Call(hdc, uintptr(rect.X), uintptr(rect.Y))
	if colorRef == clrInvalid {
		return model.Color{}, fmt.Errorf("get pixel at (%d, %d): invalid color", rect.X, rect.Y)
	}

	// COLORREF packs the channels as 0x00BBGGRR.
	return model.Color{
		R: uint8(colorRef & 0xFF),
		G: uint8((colorRef >> 8) & 0xFF),
		B: uint8((colorRef >> 16) & 0xFF),
		A: 255,
	}, nil
}
