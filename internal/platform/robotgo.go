//go:build darwin || linux || windows

package platform

import (
	"fmt"
	"log"

	"github.com/go-vgo/robotgo"
)

// robotEmulator injects input through robotgo.
type robotEmulator struct{}

// NewEmulator creates the platform-specific input emulator.
// It fails when no graphical session can receive synthetic input.
func NewEmulator() (Emulator, error) {
	if err := CheckSession(); err != nil {
		return nil, err
	}
	log.Printf("platform: robotgo emulator ready")
	return &robotEmulator{}, nil
}

// guard turns a panic raised inside the native layer into an error.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic in input backend: %v", op, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *robotEmulator) Location() (x, y int, err error) {
	err = guard("location", func() error {
		x, y = robotgo.Location()
		return nil
	})
	return x, y, err
}

func (r *robotEmulator) MoveTo(x, y int) error {
	return guard("move", func() error {
		robotgo.Move(x, y)
		return nil
	})
}

func (r *robotEmulator) Click(b Button) error {
	return guard("click", func() error {
		robotgo.Click(string(b), false)
		return nil
	})
}

func (r *robotEmulator) KeyDown(k Key) error {
	return guard("key down "+string(k), func() error {
		return robotgo.KeyToggle(string(k), "down")
	})
}

func (r *robotEmulator) KeyUp(k Key) error {
	return guard("key up "+string(k), func() error {
		return robotgo.KeyToggle(string(k), "up")
	})
}

func (r *robotEmulator) Scroll(delta int) error {
	return guard("scroll", func() error {
		robotgo.Scroll(0, delta)
		return nil
	})
}

func (r *robotEmulator) Type(text string) error {
	return guard("type", func() error {
		robotgo.TypeStr(text)
		return nil
	})
}
