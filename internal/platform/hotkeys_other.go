//go:build !windows

package platform

type hotkeyManager struct {
	handler func(action HotkeyAction)
}

func newHotkeyManager(handler func(action HotkeyAction)) HotkeyManager {
	return &hotkeyManager{handler: handler}
}

// Start reports every binding as unsupported. The application keeps running
// with in-window controls only.
func (manager *hotkeyManager) Start(bindings []Binding) ([]BindingIssue, error) {
	var issues []BindingIssue
	for _, binding := range bindings {
		if binding.Combo == "" {
			continue
		}
		issues = append(issues, BindingIssue{Binding: binding, Err: ErrHotkeysUnsupported})
	}
	return issues, nil
}

func (manager *hotkeyManager) Stop() error {
	return nil
}
