package integration

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"testing"
	"time"

	"github.com/stigoleg/keep-busy/internal/activity"
	"github.com/stigoleg/keep-busy/internal/keepalive"
	"github.com/stigoleg/keep-busy/internal/platform"
	"github.com/stigoleg/keep-busy/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterruptStopsCleanly runs a keeper in a child process, interrupts it
// mid-run and expects an orderly exit.
func TestInterruptStopsCleanly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping system test in short mode")
	}
	if !canInterrupt {
		t.Skip("cannot interrupt a child process on this platform")
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestKeeperHelper")
	cmd.Env = append(os.Environ(), "TEST_KEEPBUSY_HELPER=1")
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	lines := make(chan string, 16)
	go func() {
		sc := bufio.NewScanner(stdout)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	waitForLine(t, lines, "helper: stepping")
	require.NoError(t, interrupt(cmd.Process))
	waitForLine(t, lines, "helper: stopped")

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		assert.NoError(t, err, "helper should exit cleanly")
	case <-time.After(10 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("helper did not exit after interrupt")
	}
}

func waitForLine(t *testing.T, lines <-chan string, want string) {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "helper output ended before %q", want)
			if strings.Contains(line, want) {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

// TestKeeperHelper is the child side of TestInterruptStopsCleanly.
func TestKeeperHelper(t *testing.T) {
	if os.Getenv("TEST_KEEPBUSY_HELPER") != "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), stopSignals()...)
	defer stop()

	p, err := profile.Lookup("rich")
	require.NoError(t, err)

	k := &keepalive.Keeper{}
	require.NoError(t, k.Start(ctx, keepalive.Options{
		Profile:  p,
		Emulator: platform.NewRecorder(100, 100),
		Unit:     time.Millisecond,
	}))

	announced := false
	for ev := range k.Events() {
		if ev.Phase == activity.PhaseStep && !announced {
			fmt.Println("helper: stepping")
			announced = true
		}
	}
	require.NoError(t, k.Wait())
	fmt.Println("helper: stopped")
}
