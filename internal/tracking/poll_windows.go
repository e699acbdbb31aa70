//go:build windows

package tracking

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// AsyncKeySource samples GetAsyncKeyState on every call.
type AsyncKeySource struct {
	triggerVK uint16
	exitVK    uint16
}

func NewAsyncKeySource(trigger uint16, exitKey string) (*AsyncKeySource, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnsupported, err)
	}
	triggerVK, ok := buttonVirtualKey(trigger)
	if !ok {
		return nil, fmt.Errorf("no virtual key for mouse button %d", trigger)
	}
	exitVK, ok := keyVirtualKey(exitKey)
	if !ok {
		return nil, fmt.Errorf("unknown exit key %q", exitKey)
	}
	return &AsyncKeySource{triggerVK: triggerVK, exitVK: exitVK}, nil
}

func (s *AsyncKeySource) State() (Buttons, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		return Buttons{}, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	return Buttons{
		Trigger: keyHeld(s.triggerVK),
		Exit:    keyHeld(s.exitVK),
	}, nil
}

func (s *AsyncKeySource) Close() error {
	return nil
}

// The most significant bit of the result is set while the key is down.
func keyHeld(vk uint16) bool {
	ret, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(ret)&0x8000 != 0
}
