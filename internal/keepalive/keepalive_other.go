//go:build !windows

package keepalive

// Only Windows needs an explicit request to keep the display on while
// synthetic input is flowing; elsewhere the input itself resets idle timers.
func startDisplayWakeLock() error {
	return nil
}

func stopDisplayWakeLock() error {
	return nil
}
