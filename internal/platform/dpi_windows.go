//go:build windows

package platform

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSetProcessDPIAware = user32.NewProc("SetProcessDPIAware")
)

// SetDPIAware stops Windows from scaling the coordinates this process
// sees and sends. It must run before any pointer position is read or set.
func SetDPIAware() error {
	if err := procSetProcessDPIAware.Find(); err != nil {
		return fmt.Errorf("SetProcessDPIAware unavailable: %w", err)
	}
	ret, _, err := procSetProcessDPIAware.Call()
	if ret == 0 {
		if err == nil || errors.Is(err, windows.ERROR_SUCCESS) {
			return errors.New("SetProcessDPIAware failed")
		}
		return fmt.Errorf("SetProcessDPIAware failed: %w", err)
	}
	return nil
}
