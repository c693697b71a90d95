//go:build !darwin && !linux && !windows

package platform

// NewEmulator creates the platform-specific input emulator.
func NewEmulator() (Emulator, error) {
	return nil, ErrUnsupportedPlatform
}

// CheckSession reports whether a graphical session is available.
func CheckSession() error {
	return ErrUnsupportedPlatform
}
