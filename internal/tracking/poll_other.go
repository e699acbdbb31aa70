//go:build !windows

package tracking

// AsyncKeySource only exists on Windows.
type AsyncKeySource struct{}

func NewAsyncKeySource(trigger uint16, exitKey string) (*AsyncKeySource, error) {
	return nil, ErrBackendUnsupported
}

func (s *AsyncKeySource) State() (Buttons, error) {
	return Buttons{}, ErrBackendUnsupported
}

func (s *AsyncKeySource) Close() error {
	return nil
}
