package platform

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"
)

const (
	modAlt     = 0x0001
	modControl = 0x0002
	modShift   = 0x0004
	modWin     = 0x0008
	// MOD_NOREPEAT keeps a held combo from firing repeatedly.
	modNoRepeat = 0x4000

	wmHotkey = 0x0312
	wmQuit   = 0x0012
)

type winMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

type hotkeyManager struct {
	handler  func(action HotkeyAction)
	threadID uintptr
	done     chan struct{}
	running  bool
}

func newHotkeyManager(handler func(action HotkeyAction)) HotkeyManager {
	return &hotkeyManager{handler: handler}
}

type startResult struct {
	issues   []BindingIssue
	threadID uintptr
	err      error
}

// Start registers the bindings on a dedicated OS thread and runs the
// message loop there. RegisterHotKey ties each hotkey to the registering
// thread, so registration and GetMessage must share one.
func (manager *hotkeyManager) Start(bindings []Binding) ([]BindingIssue, error) {
	if manager.running {
		return nil, fmt.Errorf("hotkey manager already started")
	}

	results := make(chan startResult, 1)
	manager.done = make(chan struct{})
	go manager.run(bindings, results)

	result := <-results
	if result.err != nil {
		return nil, result.err
	}
	manager.threadID = result.threadID
	manager.running = true
	return result.issues, nil
}

func (manager *hotkeyManager) run(bindings []Binding, results chan<- startResult) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(manager.done)

	user32 := syscall.NewLazyDLL("user32.dll")
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	registerHotKey := user32.NewProc("RegisterHotKey")
	unregisterHotKey := user32.NewProc("UnregisterHotKey")
	getMessage := user32.NewProc("GetMessageW")
	getCurrentThreadID := kernel32.NewProc("GetCurrentThreadId")

	threadID, _, _ := getCurrentThreadID.Call()

	var issues []BindingIssue
	actions := make(map[uintptr]HotkeyAction)
	nextID := uintptr(1)

	for _, binding := range bindings {
		if binding.Combo == "" {
			continue
		}
		spec, err := parseCombo(binding.Combo)
		if err != nil {
			issues = append(issues, BindingIssue{Binding: binding, Err: err})
			continue
		}
		keyCode, err := virtualKeyCode(spec.key)
		if err != nil {
			issues = append(issues, BindingIssue{Binding: binding, Err: err})
			continue
		}

		id := nextID
		nextID++
		ok, _, callErr := registerHotKey.Call(0, id, uintptr(modifierFlags(spec)), uintptr(keyCode))
		if ok == 0 {
			// Usually another application already owns the combo.
			issues = append(issues, BindingIssue{
				Binding: binding,
				Err:     fmt.Errorf("register hotkey: %w", callErr),
			})
			continue
		}
		actions[id] = binding.Action
	}

	results <- startResult{issues: issues, threadID: threadID}

	var message winMsg
	for {
		ret, _, _ := getMessage.Call(uintptr(unsafe.Pointer(&message)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
		if message.message == wmHotkey {
			if action, ok := actions[message.wParam]; ok && manager.handler != nil {
				manager.handler(action)
			}
		}
	}

	for id := range actions {
		unregisterHotKey.Call(0, id)
	}
}

// Stop posts WM_QUIT to the message loop thread and waits for it to wind
// down.
func (manager *hotkeyManager) Stop() error {
	if !manager.running {
		return nil
	}
	manager.running = false

	user32 := syscall.NewLazyDLL("user32.dll")
	postThreadMessage := user32.NewProc("PostThreadMessageW")
	ok, _, err := postThreadMessage.Call(manager.threadID, wmQuit, 0, 0)
	if ok == 0 {
		return fmt.Errorf("post quit message: %w", err)
	}
	<-manager.done
	return nil
}

func modifierFlags(spec comboSpec) uint32 {
	var flags uint32 = modNoRepeat
	if spec.ctrl {
		flags |= modControl
	}
	if spec.alt {
		flags |= modAlt
	}
	if spec.shift {
		flags |= modShift
	}
	if spec.win {
		flags |= modWin
	}
	return flags
}

// virtualKeyCode maps a key name to a Windows virtual-key code. Letters and
// digits map to their ASCII values, F1 through F12 to VK_F1 onward.
func virtualKeyCode(key string) (uint32, error) {
	if len(key) == 1 {
		char := key[0]
		if (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') {
			return uint32(char), nil
		}
	}

	functionKeys := map[string]uint32{
		"F1": 0x70, "F2": 0x71, "F3": 0x72, "F4": 0x73,
		"F5": 0x74, "F6": 0x75, "F7": 0x76, "F8": 0x77,
		"F9": 0x78, "F10": 0x79, "F11": 0x7A, "F12": 0x7B,
	}
	if code, ok := functionKeys[key]; ok {
		return code, nil
	}

	named := map[string]uint32{
		"SPACE": 0x20, "ESC": 0x1B, "ESCAPE": 0x1B,
		"TAB": 0x09, "ENTER": 0x0D, "RETURN": 0x0D,
	}
	if code, ok := named[key]; ok {
		return code, nil
	}

	return 0, fmt.Errorf("unsupported key %q", key)
}
