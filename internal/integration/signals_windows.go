//go:build windows

package integration

import (
	"errors"
	"os"
)

func stopSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// Windows cannot deliver os.Interrupt to another process.
func interrupt(*os.Process) error {
	return errors.New("interrupt not supported on windows")
}

const canInterrupt = false
