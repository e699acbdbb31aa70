//go:build !windows

package platform

// SetDPIAware is a no-op; only Windows virtualises coordinates per DPI.
func SetDPIAware() error {
	return nil
}
