//go:build windows

package sequencer

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	inputMouse         = 0
	mouseEventLeftDown = 0x0002
	mouseEventLeftUp   = 0x0004
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSendInput    = user32.NewProc("SendInput")
	procSetCursorPos = user32.NewProc("SetCursorPos")
)

// mouseInput mirrors INPUT with the MOUSEINPUT arm of the union. Field
// alignment gives the native size on both 386 and amd64.
type mouseInput struct {
	Type      uint32
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type sendInputInjector struct{}

func newSendInputInjector() (Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInjectorUnsupported, err)
	}
	if err := procSetCursorPos.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInjectorUnsupported, err)
	}
	return sendInputInjector{}, nil
}

func (sendInputInjector) MoveTo(x, y int) error {
	ret, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if ret == 0 {
		return fmt.Errorf("SetCursorPos failed: %v", err)
	}
	return nil
}

// Click sends press and release in one SendInput call so nothing can be
// interleaved between them.
func (sendInputInjector) Click() error {
	return send(
		mouseInput{Type: inputMouse, Flags: mouseEventLeftDown},
		mouseInput{Type: inputMouse, Flags: mouseEventLeftUp},
	)
}

func (sendInputInjector) Release() error {
	return send(mouseInput{Type: inputMouse, Flags: mouseEventLeftUp})
}

func send(inputs ...mouseInput) error {
	ret, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(ret) != len(inputs) {
		return fmt.Errorf("SendInput inserted %d of %d events: %v", ret, len(inputs), err)
	}
	return nil
}
