// Package keepalive runs the activity scheduler in the background and manages
// its lifecycle: start, stop, health and cleanup of held keys.
package keepalive

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stigoleg/keep-busy/internal/activity"
	"github.com/stigoleg/keep-busy/internal/platform"
	"github.com/stigoleg/keep-busy/internal/profile"
)

// SimulationHealth represents the runtime health of activity simulation
type SimulationHealth int

const (
	SimulationHealthUnknown SimulationHealth = iota
	SimulationHealthOK
	SimulationHealthFailed
)

func (h SimulationHealth) String() string {
	switch h {
	case SimulationHealthOK:
		return "ok"
	case SimulationHealthFailed:
		return "failing"
	default:
		return "unknown"
	}
}

// eventBuffer bounds how many events wait for a slow reader before new ones are dropped.
const eventBuffer = 64

// Options configure a run.
type Options struct {
	Profile profile.Profile

	// Emulator overrides the platform emulator, e.g. with a dry-run recorder.
	Emulator platform.Emulator

	// Seed feeds the random source; zero picks a time based seed.
	Seed int64

	// Sleeper and Unit are passed through to the scheduler. Tests shrink them.
	Sleeper activity.Sleeper
	Unit    time.Duration
}

// Keeper manages one background activity run.
type Keeper struct {
	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	err       error
	startedAt time.Time
	events    chan activity.Event
	cleanup   *CleanupManager

	// simulationFailCount tracks consecutive simulation failures (atomic for thread-safety)
	simulationFailCount int64
	iterations          int64
}

// IsRunning returns whether the activity loop is active
func (k *Keeper) IsRunning() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.running
}

// Start validates the options, brings up the emulator and starts the loop.
// Emulator initialisation errors are returned here; a failure to read the pointer
// after the warm-up is reported by Wait.
func (k *Keeper) Start(ctx context.Context, opts Options) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.running {
		return errors.New("keeper already running")
	}
	if err := opts.Profile.Validate(); err != nil {
		return err
	}

	emu := opts.Emulator
	if emu == nil {
		var err error
		emu, err = platform.NewEmulator()
		if err != nil {
			return err
		}
	}

	events := make(chan activity.Event, eventBuffer)
	sched, err := activity.NewScheduler(activity.Config{
		Profile:  opts.Profile,
		Emulator: emu,
		Source:   activity.NewSource(opts.Seed),
		Sleeper:  opts.Sleeper,
		Unit:     opts.Unit,
		Observer: func(ev activity.Event) { k.observe(events, ev) },
	})
	if err != nil {
		return err
	}

	k.cleanup = NewCleanupManager(2 * time.Second)
	k.cleanup.RegisterFunc("modifier keys", func() error {
		return platform.ReleaseAll(emu, platform.KeyAlt, platform.KeyControl)
	})
	k.cleanup.RegisterFunc("display wake lock", stopDisplayWakeLock)
	if err := startDisplayWakeLock(); err != nil {
		log.Printf("keeper: display wake lock unavailable: %v", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	k.events = events
	k.cancel = cancel
	k.done = make(chan struct{})
	k.err = nil
	k.startedAt = time.Now()
	k.running = true
	atomic.StoreInt64(&k.iterations, 0)
	k.ResetSimulationHealth()

	go k.loop(runCtx, sched, k.done, k.events, k.cleanup)

	log.Printf("keeper: started (profile=%s)", opts.Profile.Name)
	return nil
}

// loop owns every emulator call for the run, including the cleanup.
func (k *Keeper) loop(ctx context.Context, sched *activity.Scheduler, done chan struct{}, events chan activity.Event, cleanup *CleanupManager) {
	defer close(done)

	err := sched.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		log.Printf("keeper: activity loop failed: %v", err)
	}
	cleanup.Execute()

	k.mu.Lock()
	k.err = err
	k.running = false
	k.mu.Unlock()
	close(events)
}

func (k *Keeper) observe(events chan<- activity.Event, ev activity.Event) {
	if ev.Phase == activity.PhaseStep {
		atomic.AddInt64(&k.iterations, 1)
		switch {
		case ev.Outcome.Err != nil:
			k.RecordSimulationFailure()
		case ev.Executed:
			k.ResetSimulationHealth()
		}
	}
	// The loop never waits on a slow reader.
	select {
	case events <- ev:
	default:
	}
}

// Events returns the event stream of the current run. It is closed when the run ends.
func (k *Keeper) Events() <-chan activity.Event {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.events
}

// Wait blocks until the loop has exited and returns its terminal error,
// which is nil when the loop was stopped.
func (k *Keeper) Wait() error {
	k.mu.Lock()
	done := k.done
	k.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.err
}

// Stop stops the activity loop
func (k *Keeper) Stop() error {
	return k.StopWithTimeout(0)
}

// StopWithTimeout stops the activity loop, waiting at most timeout for the
// in-flight operation and the cleanup to finish.
func (k *Keeper) StopWithTimeout(timeout time.Duration) error {
	k.mu.Lock()
	if !k.running {
		k.mu.Unlock()
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if k.cancel != nil {
		k.cancel()
		k.cancel = nil
	}
	done := k.done
	k.mu.Unlock()

	select {
	case <-done:
		log.Printf("keeper: stopped")
		return nil
	case <-time.After(timeout):
		log.Printf("keeper: stop timeout exceeded after %v", timeout)
		return context.DeadlineExceeded
	}
}

// Uptime returns how long the current run has been going.
func (k *Keeper) Uptime() time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.running {
		return 0
	}
	return time.Since(k.startedAt)
}

// Iterations returns the number of scheduler steps in the current run.
func (k *Keeper) Iterations() int64 {
	return atomic.LoadInt64(&k.iterations)
}

// GetSimulationHealth returns the current health of activity simulation
func (k *Keeper) GetSimulationHealth() SimulationHealth {
	failCount := atomic.LoadInt64(&k.simulationFailCount)
	if failCount > 0 {
		return SimulationHealthFailed
	}
	return SimulationHealthOK
}

// RecordSimulationFailure increments the simulation failure counter
func (k *Keeper) RecordSimulationFailure() {
	atomic.AddInt64(&k.simulationFailCount, 1)
}

// ResetSimulationHealth resets the simulation failure counter
func (k *Keeper) ResetSimulationHealth() {
	atomic.StoreInt64(&k.simulationFailCount, 0)
}
