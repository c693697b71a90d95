package keepalive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stigoleg/keep-busy/internal/activity"
	"github.com/stigoleg/keep-busy/internal/platform"
	"github.com/stigoleg/keep-busy/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastProfile(kinds ...string) profile.Profile {
	p := profile.Profile{Name: "test", DelayRangeSeconds: [2]int{1, 1}}
	for _, k := range kinds {
		p.Operations = append(p.Operations, profile.Operation{Kind: k})
	}
	return p
}

func startKeeper(t *testing.T, k *Keeper, p profile.Profile, rec *platform.Recorder) {
	t.Helper()
	err := k.Start(context.Background(), Options{
		Profile:  p,
		Emulator: rec,
		Seed:     1,
		Unit:     time.Millisecond,
	})
	require.NoError(t, err)
}

func waitForSteps(t *testing.T, events <-chan activity.Event, n int) []activity.Event {
	t.Helper()
	var steps []activity.Event
	timeout := time.After(5 * time.Second)
	for len(steps) < n {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed early")
			if ev.Phase == activity.PhaseStep {
				steps = append(steps, ev)
			}
		case <-timeout:
			t.Fatalf("saw %d of %d steps before timeout", len(steps), n)
		}
	}
	return steps
}

func TestKeeperLifecycle(t *testing.T) {
	k := &Keeper{}
	defer k.Stop()

	assert.False(t, k.IsRunning(), "expected not running at start")
	assert.Zero(t, k.Uptime())

	rec := platform.NewRecorder(300, 300)
	startKeeper(t, k, fastProfile(profile.KindClick, profile.KindScroll), rec)
	assert.True(t, k.IsRunning())

	err := k.Start(context.Background(), Options{Profile: fastProfile(profile.KindClick), Emulator: rec})
	assert.Error(t, err, "second start must fail")

	steps := waitForSteps(t, k.Events(), 5)
	assert.Len(t, steps, 5)
	assert.GreaterOrEqual(t, k.Iterations(), int64(5))
	assert.Equal(t, SimulationHealthOK, k.GetSimulationHealth())

	require.NoError(t, k.Stop())
	assert.False(t, k.IsRunning())
	assert.NoError(t, k.Wait())

	// The cleanup releases the modifiers last.
	calls := rec.Calls()
	require.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, platform.Call{Op: platform.OpKeyUp, Key: platform.KeyAlt}, calls[len(calls)-2])
	assert.Equal(t, platform.Call{Op: platform.OpKeyUp, Key: platform.KeyControl}, calls[len(calls)-1])

	_, open := <-drain(k.Events())
	assert.False(t, open, "events are closed after the run")
}

func drain(ch <-chan activity.Event) <-chan activity.Event {
	for range ch {
	}
	return ch
}

func TestKeeperReportsBootstrapFailure(t *testing.T) {
	k := &Keeper{}
	rec := platform.NewRecorder(0, 0)
	rec.LocationErr = errors.New("pointer unavailable")

	startKeeper(t, k, fastProfile(profile.KindClick), rec)
	err := k.Wait()
	assert.ErrorIs(t, err, activity.ErrNoOrigin)
	assert.False(t, k.IsRunning())
}

func TestKeeperRejectsInvalidProfile(t *testing.T) {
	k := &Keeper{}
	err := k.Start(context.Background(), Options{
		Profile:  profile.Profile{Name: "empty"},
		Emulator: platform.NewRecorder(0, 0),
	})
	assert.ErrorIs(t, err, profile.ErrEmptyCatalog)
	assert.False(t, k.IsRunning())
}

func TestKeeperHealthTracksFailures(t *testing.T) {
	k := &Keeper{}
	defer k.Stop()

	rec := platform.NewRecorder(0, 0)
	rec.FailOn(platform.OpClick, errors.New("denied"))
	startKeeper(t, k, fastProfile(profile.KindClick), rec)

	waitForSteps(t, k.Events(), 2)
	assert.Equal(t, SimulationHealthFailed, k.GetSimulationHealth())
	assert.True(t, k.IsRunning(), "failures never stop the loop")

	require.NoError(t, k.Stop())
	k.ResetSimulationHealth()
	assert.Equal(t, SimulationHealthOK, k.GetSimulationHealth())
}

func TestKeeperStopsWithParentContext(t *testing.T) {
	k := &Keeper{}
	ctx, cancel := context.WithCancel(context.Background())
	err := k.Start(ctx, Options{
		Profile:  fastProfile(profile.KindSwitchWindow),
		Emulator: platform.NewRecorder(0, 0),
		Unit:     time.Millisecond,
	})
	require.NoError(t, err)

	cancel()
	assert.NoError(t, k.Wait())
	assert.False(t, k.IsRunning())
}

func TestStopWhenNotRunning(t *testing.T) {
	k := &Keeper{}
	assert.NoError(t, k.Stop())
	assert.NoError(t, k.Wait())
}

func TestCleanupManager(t *testing.T) {
	t.Run("runs in order once", func(t *testing.T) {
		cm := NewCleanupManager(time.Second)
		var order []string
		cm.RegisterFunc("a", func() error { order = append(order, "a"); return nil })
		cm.RegisterFunc("b", func() error { order = append(order, "b"); return nil })

		assert.NoError(t, cm.Execute())
		assert.NoError(t, cm.Execute())
		assert.Equal(t, []string{"a", "b"}, order)
	})

	t.Run("joins errors and recovers panics", func(t *testing.T) {
		cm := NewCleanupManager(time.Second)
		boom := errors.New("boom")
		ran := false
		cm.RegisterFunc("fails", func() error { return boom })
		cm.RegisterFunc("panics", func() error { panic("oops") })
		cm.RegisterFunc("still runs", func() error { ran = true; return nil })

		err := cm.Execute()
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "panic during cleanup of panics")
		assert.True(t, ran)
	})

	t.Run("times out", func(t *testing.T) {
		cm := NewCleanupManager(20 * time.Millisecond)
		release := make(chan struct{})
		defer close(release)
		cm.RegisterFunc("slow", func() error { <-release; return nil })

		assert.ErrorContains(t, cm.Execute(), "timeout")
	})

	t.Run("clear", func(t *testing.T) {
		cm := NewCleanupManager(0)
		called := false
		cm.RegisterFunc("x", func() error { called = true; return nil })
		cm.Clear()

		assert.NoError(t, cm.Execute())
		assert.False(t, called)
	})
}
