package platform

import "errors"

// Key identifies a keyboard key the engine presses or releases.
type Key string

const (
	KeyAlt     Key = "alt"
	KeyTab     Key = "tab"
	KeyControl Key = "ctrl"
	KeyReturn  Key = "enter"
)

// Button identifies a pointer button.
type Button string

const (
	ButtonLeft  Button = "left"
	ButtonRight Button = "right"
)

var (
	// ErrUnsupportedPlatform is returned when no input backend exists for the host OS.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoDisplay is returned when no graphical session is reachable.
	ErrNoDisplay = errors.New("no display session found")
)

// Emulator defines the input injection primitives the activity engine consumes.
//
// Every method is best-effort from the caller's point of view: an error means the
// OS refused or could not deliver the synthetic event, nothing more.
type Emulator interface {
	// Location returns the current pointer position in absolute screen coordinates.
	Location() (x, y int, err error)

	// MoveTo moves the pointer to absolute screen coordinates.
	MoveTo(x, y int) error

	// Click performs a single press+release of the button.
	Click(b Button) error

	KeyDown(k Key) error
	KeyUp(k Key) error

	// Scroll emits one vertical wheel event of the given signed delta.
	Scroll(delta int) error

	// Type inserts literal text.
	Type(text string) error
}

// ReleaseAll releases each key, ignoring keys that were not held.
// It returns the joined errors of every release that failed.
func ReleaseAll(e Emulator, keys ...Key) error {
	var errs []error
	for _, k := range keys {
		if err := e.KeyUp(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
