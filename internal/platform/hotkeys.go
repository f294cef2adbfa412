package platform

import (
	"errors"
	"fmt"
	"strings"
)

// HotkeyAction names a global hotkey binding.
type HotkeyAction string

const (
	HotkeyToggleVisibility HotkeyAction = "toggle_visibility"
	HotkeyStartStop        HotkeyAction = "start_stop"
	HotkeyReset            HotkeyAction = "reset"
)

// ErrHotkeysUnsupported indicates global hotkeys are not available on this
// system.
var ErrHotkeysUnsupported = errors.New("global hotkeys unsupported")

// Binding pairs an action with a combo string like "Ctrl+Alt+T". An empty
// combo disables the binding.
type Binding struct {
	Action HotkeyAction
	Combo  string
}

// BindingIssue reports one binding that could not be registered. The rest
// of the bindings keep working.
type BindingIssue struct {
	Binding Binding
	Err     error
}

func (issue BindingIssue) String() string {
	return fmt.Sprintf("%s (%q): %v", issue.Binding.Action, issue.Binding.Combo, issue.Err)
}

// HotkeyManager registers system-wide hotkeys and reports presses through
// the handler it was created with.
type HotkeyManager interface {
	// Start registers the bindings and begins listening. Bindings that
	// fail to register are returned as issues; the error is reserved for
	// total failure.
	Start(bindings []Binding) ([]BindingIssue, error)
	Stop() error
}

// NewHotkeyManager returns the platform hotkey manager. The handler is
// called from the manager's own goroutine.
func NewHotkeyManager(handler func(action HotkeyAction)) HotkeyManager {
	return newHotkeyManager(handler)
}

// comboSpec is a parsed hotkey combo.
type comboSpec struct {
	ctrl  bool
	alt   bool
	shift bool
	win   bool
	key   string
}

// parseCombo splits "Ctrl+Alt+T" style strings. The final token is the key;
// everything before it must be a modifier. At least one modifier is
// required, since a bare key would swallow normal typing.
func parseCombo(combo string) (comboSpec, error) {
	var spec comboSpec

	parts := strings.Split(combo, "+")
	if len(parts) < 2 {
		return spec, fmt.Errorf("combo %q needs at least one modifier", combo)
	}

	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "ctrl", "control":
			spec.ctrl = true
		case "alt":
			spec.alt = true
		case "shift":
			spec.shift = true
		case "win", "super", "cmd", "meta":
			spec.win = true
		default:
			return spec, fmt.Errorf("unknown modifier %q in combo %q", part, combo)
		}
	}

	key := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	if key == "" {
		return spec, fmt.Errorf("combo %q is missing a key", combo)
	}
	spec.key = key
	return spec, nil
}
