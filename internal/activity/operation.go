package activity

import (
	"errors"
	"fmt"

	"github.com/stigoleg/keep-busy/internal/platform"
	"github.com/stigoleg/keep-busy/internal/profile"
)

const (
	// JitterRadius bounds how far a click lands from its origin on each axis.
	JitterRadius = 100

	// ScrollSpan bounds the number of wheel steps in one scroll, in either direction.
	ScrollSpan = 100

	DefaultCode = "const result = 5;"
	DefaultLog  = "console.log('Debug => result is => ', result);"
)

// Kind enumerates the operation variants.
type Kind int

const (
	KindClick Kind = iota
	KindSwitchWindow
	KindScroll
	KindSwitchTab
	KindTypeCode
)

var kindNames = map[Kind]string{
	KindClick:        profile.KindClick,
	KindSwitchWindow: profile.KindSwitchWindow,
	KindScroll:       profile.KindScroll,
	KindSwitchTab:    profile.KindSwitchTab,
	KindTypeCode:     profile.KindTypeCode,
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a catalog name to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown operation kind %q", s)
}

// Point is an absolute screen coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d; %d)", p.X, p.Y)
}

// Operation is one unit of synthetic activity. It is a closed variant type:
// Kind selects the behaviour and only the fields that kind reads are meaningful.
// Operations are values and never change after construction.
type Operation struct {
	Kind Kind

	// Origin is the click centre, captured once at startup.
	Origin Point

	// Stub makes execution a no-op apart from the returned outcome.
	Stub bool

	// Code and Log are the two lines typed by KindTypeCode.
	Code string
	Log  string
}

// Outcome is what a single execution drew and whether the emulator complained.
// It is never stored on the Operation.
type Outcome struct {
	Target    Point
	ScrollLen int
	Err       error
}

func (op Operation) String() string {
	s := op.Kind.String()
	if op.Stub {
		s += " (stub)"
	}
	return s
}

// Describe renders a one-line human description of an execution.
func (op Operation) Describe(o Outcome) string {
	if op.Stub {
		return fmt.Sprintf("%s skipped (stub)", op.Kind)
	}
	switch op.Kind {
	case KindClick:
		return fmt.Sprintf("Move mouse to %s and click", o.Target)
	case KindSwitchWindow:
		return "Switch window"
	case KindScroll:
		return fmt.Sprintf("Scroll window vertical length: %d", o.ScrollLen)
	case KindSwitchTab:
		return "Switch tab"
	case KindTypeCode:
		return "Type code"
	}
	return op.Kind.String()
}

// Execute performs the operation against the emulator. Every emulator call is
// attempted even if an earlier one failed; failures are joined into Outcome.Err.
func (op Operation) Execute(e platform.Emulator, src Source) Outcome {
	if op.Stub {
		return Outcome{}
	}
	var b bestEffort
	var out Outcome
	switch op.Kind {
	case KindClick:
		out.Target = Point{
			X: src.Uniform(op.Origin.X-JitterRadius, op.Origin.X+JitterRadius),
			Y: src.Uniform(op.Origin.Y-JitterRadius, op.Origin.Y+JitterRadius),
		}
		b.do(e.MoveTo(out.Target.X, out.Target.Y))
		b.do(e.Click(platform.ButtonLeft))

	case KindSwitchWindow:
		// Alt stays held across the Tab press so the OS opens its window switcher.
		b.do(e.KeyDown(platform.KeyAlt))
		b.do(e.KeyDown(platform.KeyTab))
		b.do(e.KeyUp(platform.KeyAlt))
		b.do(e.KeyUp(platform.KeyTab))

	case KindScroll:
		out.ScrollLen = src.Uniform(-ScrollSpan, ScrollSpan)
		step := 1
		if out.ScrollLen < 0 {
			step = -1
		}
		for i := 0; i < abs(out.ScrollLen); i++ {
			b.do(e.Scroll(step))
		}

	case KindSwitchTab:
		b.do(e.KeyDown(platform.KeyControl))
		for i := 0; i < 2; i++ {
			b.do(e.KeyDown(platform.KeyTab))
			b.do(e.KeyUp(platform.KeyTab))
		}
		b.do(e.KeyUp(platform.KeyControl))

	case KindTypeCode:
		typeRunes(&b, e, op.Code)
		for i := 0; i < 2; i++ {
			b.do(e.KeyDown(platform.KeyReturn))
			b.do(e.KeyUp(platform.KeyReturn))
		}
		typeRunes(&b, e, op.Log)

	default:
		b.do(fmt.Errorf("unknown operation kind %d", op.Kind))
	}
	out.Err = b.err()
	return out
}

// typeRunes inserts text one character per call, the way a keyboard delivers it.
func typeRunes(b *bestEffort, e platform.Emulator, text string) {
	for _, r := range text {
		b.do(e.Type(string(r)))
	}
}

type bestEffort struct {
	errs []error
}

func (b *bestEffort) do(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

func (b *bestEffort) err() error {
	return errors.Join(b.errs...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
