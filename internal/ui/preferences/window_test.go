package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ghosttimer/internal/core/model"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  model.Color
		ok    bool
	}{
		{"#FF8000", model.Color{R: 255, G: 128, B: 0, A: 255}, true},
		{"ff8000", model.Color{R: 255, G: 128, B: 0, A: 255}, true},
		{"  #000000 ", model.Color{R: 0, G: 0, B: 0, A: 255}, true},
		{"#FFF", model.Color{}, false},
		{"#GGGGGG", model.Color{}, false},
		{"", model.Color{}, false},
	}

	for _, tt := range tests {
		parsed, ok := parseHexColor(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, parsed, "input %q", tt.input)
		}
	}
}

func TestFormatHexColorRoundTrip(t *testing.T) {
	value := model.Color{R: 18, G: 52, B: 86, A: 255}

	parsed, ok := parseHexColor(formatHexColor(value))
	assert.True(t, ok)
	assert.Equal(t, value, parsed)
}

func TestParseInt(t *testing.T) {
	parsed, ok := parseInt(" -250 ")
	assert.True(t, ok)
	assert.Equal(t, -250, parsed)

	_, ok = parseInt("12px")
	assert.False(t, ok)
}
