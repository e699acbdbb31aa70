//go:build !windows

package sequencer

func newSendInputInjector() (Injector, error) {
	return nil, ErrInjectorUnsupported
}
