package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		combo   string
		want    comboSpec
		wantErr bool
	}{
		{combo: "Ctrl+Alt+T", want: comboSpec{ctrl: true, alt: true, key: "T"}},
		{combo: "Ctrl+Shift+R", want: comboSpec{ctrl: true, shift: true, key: "R"}},
		{combo: "ctrl+alt+s", want: comboSpec{ctrl: true, alt: true, key: "S"}},
		{combo: "Win+F5", want: comboSpec{win: true, key: "F5"}},
		{combo: "Ctrl+Alt+Shift+9", want: comboSpec{ctrl: true, alt: true, shift: true, key: "9"}},
		{combo: "T", wantErr: true},
		{combo: "Bogus+T", wantErr: true},
		{combo: "Ctrl+", wantErr: true},
		{combo: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			spec, err := parseCombo(tt.combo)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestSingleInstanceGuard(t *testing.T) {
	first, err := AcquireSingleInstance("ghosttimer-test")
	require.NoError(t, err)
	defer first.Release()

	_, err = AcquireSingleInstance("ghosttimer-test")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())

	second, err := AcquireSingleInstance("ghosttimer-test")
	require.NoError(t, err)
	second.Release()
}
