package model

// Color is an 8-bit RGBA color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Predefined colors.
var (
	White = Color{R: 255, G: 255, B: 255, A: 255}
	Black = Color{R: 0, G: 0, B: 0, A: 255}
)

// Luminance returns the perceived brightness on a 0-255 scale.
func (color Color) Luminance() float64 {
	return 0.299*float64(color.R) + 0.587*float64(color.G) + 0.114*float64(color.B)
}

// ContrastingText returns the text color that reads best over this
// background: white below luminance 128, black at 128 and above.
func (color Color) ContrastingText() Color {
	if color.Luminance() < 128 {
		return White
	}
	return Black
}

// TextColor selects between automatic contrast detection and a fixed color.
// The zero value means Auto.
type TextColor struct {
	Manual *Color `json:"manual,omitempty"`
}

// AutoText is the automatic text color selection.
var AutoText = TextColor{}

// ManualText returns a fixed text color selection.
func ManualText(color Color) TextColor {
	chosen := color
	return TextColor{Manual: &chosen}
}

// IsAuto reports whether the text color is detected from the background.
func (choice TextColor) IsAuto() bool {
	return choice.Manual == nil
}
