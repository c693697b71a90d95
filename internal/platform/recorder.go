package platform

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Op names a recorded emulator primitive.
type Op string

const (
	OpLocation Op = "location"
	OpMove     Op = "move"
	OpClick    Op = "click"
	OpKeyDown  Op = "key-down"
	OpKeyUp    Op = "key-up"
	OpScroll   Op = "scroll"
	OpType     Op = "type"
)

// Call is one recorded emulator invocation.
type Call struct {
	Op     Op
	X, Y   int
	Key    Key
	Button Button
	Delta  int
	Text   string
}

func (c Call) String() string {
	switch c.Op {
	case OpMove:
		return fmt.Sprintf("move(%d,%d)", c.X, c.Y)
	case OpClick:
		return fmt.Sprintf("click(%s)", c.Button)
	case OpKeyDown, OpKeyUp:
		return fmt.Sprintf("%s(%s)", c.Op, c.Key)
	case OpScroll:
		return fmt.Sprintf("scroll(%+d)", c.Delta)
	case OpType:
		return fmt.Sprintf("type(%q)", c.Text)
	default:
		return string(c.Op)
	}
}

// Recorder is an Emulator that performs no OS action. It records every call,
// which makes it the backend for dry runs and for tests.
type Recorder struct {
	mu    sync.Mutex
	x, y  int
	calls []Call
	fail  map[Op]error

	// LocationErr, when set, is returned by Location.
	LocationErr error

	// Verbose logs every call with the "dry-run:" prefix.
	Verbose bool
}

// NewRecorder returns a Recorder whose pointer rests at (x, y).
func NewRecorder(x, y int) *Recorder {
	return &Recorder{x: x, y: y, fail: make(map[Op]error)}
}

// FailOn makes every subsequent call of op return err.
func (r *Recorder) FailOn(op Op, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[op] = err
}

// Calls returns a copy of the recorded calls, excluding Location queries.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, 0, len(r.calls))
	for _, c := range r.calls {
		if c.Op != OpLocation {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = r.calls[:0]
}

// Trace renders the recorded calls as a single space separated line.
func (r *Recorder) Trace() string {
	calls := r.Calls()
	parts := make([]string, len(calls))
	for i, c := range calls {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	err := r.fail[c.Op]
	if c.Op == OpMove && err == nil {
		r.x, r.y = c.X, c.Y
	}
	r.mu.Unlock()

	if r.Verbose && c.Op != OpLocation {
		log.Printf("dry-run: %s", c)
	}
	return err
}

func (r *Recorder) Location() (int, int, error) {
	if err := r.record(Call{Op: OpLocation}); err != nil {
		return 0, 0, err
	}
	if r.LocationErr != nil {
		return 0, 0, r.LocationErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y, nil
}

func (r *Recorder) MoveTo(x, y int) error {
	return r.record(Call{Op: OpMove, X: x, Y: y})
}

func (r *Recorder) Click(b Button) error {
	return r.record(Call{Op: OpClick, Button: b})
}

func (r *Recorder) KeyDown(k Key) error {
	return r.record(Call{Op: OpKeyDown, Key: k})
}

func (r *Recorder) KeyUp(k Key) error {
	return r.record(Call{Op: OpKeyUp, Key: k})
}

func (r *Recorder) Scroll(delta int) error {
	return r.record(Call{Op: OpScroll, Delta: delta})
}

func (r *Recorder) Type(text string) error {
	return r.record(Call{Op: OpType, Text: text})
}
