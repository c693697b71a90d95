//go:build linux

package platform

import (
	"log"
	"os"
)

// Display server types.
const (
	DisplayServerWayland = "wayland"
	DisplayServerX11     = "x11"
	DisplayServerUnknown = "unknown"
)

// DetectDisplayServer detects whether running on Wayland or X11.
func DetectDisplayServer() string {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if os.Getenv("XDG_SESSION_TYPE") == DisplayServerWayland {
		return DisplayServerWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	if os.Getenv("XDG_SESSION_TYPE") == DisplayServerX11 {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// CheckSession reports whether a graphical session is available.
// robotgo talks to X11, so a pure Wayland session only works through XWayland.
func CheckSession() error {
	switch DetectDisplayServer() {
	case DisplayServerX11:
		if os.Getenv("DISPLAY") == "" {
			return ErrNoDisplay
		}
		return nil
	case DisplayServerWayland:
		if os.Getenv("DISPLAY") == "" {
			return ErrNoDisplay
		}
		log.Printf("platform: wayland session detected; synthetic input goes through XWayland and may be ignored by native windows")
		return nil
	default:
		return ErrNoDisplay
	}
}
