//go:build !windows

package integration

import (
	"os"
	"syscall"
)

func stopSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// interrupt delivers what a user pressing Ctrl+C would.
func interrupt(proc *os.Process) error {
	return proc.Signal(syscall.SIGINT)
}

const canInterrupt = true
