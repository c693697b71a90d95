//go:build windows

package keepalive

import (
	"runtime"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = modkernel32.NewProc("SetThreadExecutionState")
)

const (
	esContinuous      = 0x80000000
	esDisplayRequired = 0x00000002
)

// The execution state belongs to an OS thread, so one locked goroutine sets it
// and resets it.
var (
	wakeMu   sync.Mutex
	wakeStop chan chan error
)

// startDisplayWakeLock keeps the display on for the lifetime of the run.
func startDisplayWakeLock() error {
	wakeMu.Lock()
	defer wakeMu.Unlock()
	if wakeStop != nil {
		return nil
	}

	started := make(chan error, 1)
	stop := make(chan chan error)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := setExecutionState(esContinuous | esDisplayRequired); err != nil {
			started <- err
			return
		}
		started <- nil
		reply := <-stop
		reply <- setExecutionState(esContinuous)
	}()

	if err := <-started; err != nil {
		return err
	}
	wakeStop = stop
	return nil
}

// stopDisplayWakeLock resets the thread execution state.
func stopDisplayWakeLock() error {
	wakeMu.Lock()
	stop := wakeStop
	wakeStop = nil
	wakeMu.Unlock()
	if stop == nil {
		return nil
	}
	reply := make(chan error, 1)
	stop <- reply
	return <-reply
}

func setExecutionState(flags uint32) error {
	r, _, err := procSetThreadExecutionState.Call(uintptr(flags))
	if r == 0 {
		return err
	}
	return nil
}
