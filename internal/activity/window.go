package activity

// WindowContext is the engine's belief about which window has focus.
type WindowContext int

const (
	PrimaryEditor WindowContext = iota
	Browser
)

func (w WindowContext) String() string {
	switch w {
	case PrimaryEditor:
		return "editor"
	case Browser:
		return "browser"
	default:
		return "unknown"
	}
}

// Toggle returns the other window.
func (w WindowContext) Toggle() WindowContext {
	if w == PrimaryEditor {
		return Browser
	}
	return PrimaryEditor
}

// Allows reports whether op may run while this window has focus.
// Typing is only ever sent to the editor.
func (w WindowContext) Allows(op Operation) bool {
	return op.Kind != KindTypeCode || w == PrimaryEditor
}
