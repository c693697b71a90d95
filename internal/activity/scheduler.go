// Package activity is the operation-dispatch engine: it picks operations at random
// from a catalog, gates them on the focused window, runs them through an input
// emulator and paces everything with randomised pauses.
package activity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/stigoleg/keep-busy/internal/platform"
	"github.com/stigoleg/keep-busy/internal/profile"
)

// ErrNoOrigin is returned when the starting pointer position cannot be read.
var ErrNoOrigin = errors.New("cannot read initial pointer position")

// Phase tells observers which part of the lifecycle an event belongs to.
type Phase int

const (
	PhaseWarmup Phase = iota
	PhaseReady
	PhaseStep
)

// Event describes one thing the scheduler did.
type Event struct {
	Phase Phase
	Time  time.Time

	// Warmup is the pending warm-up (PhaseWarmup).
	Warmup time.Duration

	// Origin is the captured pointer position (PhaseReady).
	Origin Point

	// Step fields.
	Iteration int
	Index     int
	Operation Operation
	Executed  bool
	Gated     bool
	Outcome   Outcome
	Context   WindowContext
	Delay     time.Duration
}

// Describe renders the step for logs and the status view.
func (ev Event) Describe() string {
	switch ev.Phase {
	case PhaseWarmup:
		return fmt.Sprintf("warming up for %s", ev.Warmup)
	case PhaseReady:
		return fmt.Sprintf("x is: %d; y is: %d", ev.Origin.X, ev.Origin.Y)
	}
	if ev.Gated {
		return fmt.Sprintf("%s skipped, focus is on %s", ev.Operation.Kind, ev.Context)
	}
	return ev.Operation.Describe(ev.Outcome)
}

// State is the scheduler's per-run mutable state, threaded through each Step.
type State struct {
	Context   WindowContext
	Iteration int
}

// Config wires a Scheduler.
type Config struct {
	Profile  profile.Profile
	Emulator platform.Emulator
	Source   Source
	Sleeper  Sleeper

	// Observer, when set, receives every event on the scheduler goroutine.
	Observer func(Event)

	// Unit scales profile seconds into real durations. Zero means time.Second.
	Unit time.Duration
}

// Scheduler drives the activity loop. It is not safe for concurrent use: every
// emulator call is issued from the goroutine that calls Run or Step.
type Scheduler struct {
	cfg     Config
	catalog *Catalog
}

// NewScheduler validates cfg and returns a scheduler ready to Bootstrap.
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	if cfg.Emulator == nil {
		return nil, errors.New("scheduler: emulator is required")
	}
	if cfg.Source == nil {
		cfg.Source = NewSource(0)
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = RealSleeper{}
	}
	if cfg.Unit == 0 {
		cfg.Unit = time.Second
	}
	return &Scheduler{cfg: cfg}, nil
}

// Catalog returns the catalog built by Bootstrap, or nil before it ran.
func (s *Scheduler) Catalog() *Catalog {
	return s.catalog
}

func (s *Scheduler) emit(ev Event) {
	ev.Time = time.Now()
	if s.cfg.Observer != nil {
		s.cfg.Observer(ev)
	}
}

// Bootstrap waits out the warm-up, then captures the pointer position that
// every click in the catalog is centred on.
func (s *Scheduler) Bootstrap(ctx context.Context) error {
	warmup := time.Duration(s.cfg.Profile.WarmupSeconds) * s.cfg.Unit
	log.Printf("scheduler: profile %q, warm-up %s, delay [%d,%d]s",
		s.cfg.Profile.Name, warmup, s.cfg.Profile.DelayMin(), s.cfg.Profile.DelayMax())
	s.emit(Event{Phase: PhaseWarmup, Warmup: warmup})

	if err := s.cfg.Sleeper.Sleep(ctx, warmup); err != nil {
		return err
	}

	x, y, err := s.cfg.Emulator.Location()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoOrigin, err)
	}
	origin := Point{X: x, Y: y}

	catalog, err := NewCatalog(s.cfg.Profile.Operations, origin)
	if err != nil {
		return err
	}
	s.catalog = catalog

	ev := Event{Phase: PhaseReady, Origin: origin}
	log.Printf("scheduler: %s", ev.Describe())
	s.emit(ev)
	return nil
}

// Step runs one iteration: pick, gate, execute, track focus, pause.
// It returns the updated state; the error is non-nil only when ctx ends the pause.
func (s *Scheduler) Step(ctx context.Context, st State) (State, Event, error) {
	if s.catalog == nil {
		return st, Event{}, errors.New("scheduler: Step called before Bootstrap")
	}
	st.Iteration++

	idx := s.cfg.Source.Uniform(0, s.catalog.Len()-1)
	op := s.catalog.At(idx)
	ev := Event{Phase: PhaseStep, Iteration: st.Iteration, Index: idx, Operation: op}

	if st.Context.Allows(op) {
		ev.Outcome = op.Execute(s.cfg.Emulator, s.cfg.Source)
		ev.Executed = !op.Stub
	} else {
		ev.Gated = true
	}

	// Focus follows selection of a window switch, not its success.
	if op.Kind == KindSwitchWindow {
		st.Context = st.Context.Toggle()
	}
	ev.Context = st.Context

	seconds := s.cfg.Source.Uniform(s.cfg.Profile.DelayMin(), s.cfg.Profile.DelayMax())
	ev.Delay = time.Duration(seconds) * s.cfg.Unit

	log.Printf("scheduler: index %d: %s; focus=%s; delay_after_operation=%s", idx, ev.Describe(), ev.Context, ev.Delay)
	if ev.Outcome.Err != nil {
		log.Printf("scheduler: %s reported errors (ignored): %v", op.Kind, ev.Outcome.Err)
	}
	s.emit(ev)

	return st, ev, s.cfg.Sleeper.Sleep(ctx, ev.Delay)
}

// Run bootstraps and then steps until ctx is cancelled. The only errors it
// returns are bootstrap failures and the context's own error.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Bootstrap(ctx); err != nil {
		return err
	}
	st := State{Context: PrimaryEditor}
	for {
		var err error
		st, _, err = s.Step(ctx, st)
		if err != nil {
			return err
		}
	}
}
