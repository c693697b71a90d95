package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/stigoleg/keep-busy/internal/config"
	"github.com/stigoleg/keep-busy/internal/keepalive"
	"github.com/stigoleg/keep-busy/internal/platform"
	"github.com/stigoleg/keep-busy/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const appVersion = "0.4.0"

// Dry runs pretend the pointer rests in the middle of a 1920x1080 screen.
const dryRunX, dryRunY = 960, 540

func fatal(err error) {
	log.Printf("keepbusy: %v", err)
	fmt.Fprintln(os.Stderr, ui.Current.Error.Render("keepbusy: "+err.Error()))
	os.Exit(1)
}

func main() {
	cfg := config.ParseFlags(appVersion)

	if !cfg.Headless {
		f, err := tea.LogToFile(cfg.LogFile, "keepbusy")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), getSignalsForPlatform()...)
	defer stop()

	opts := keepalive.Options{Profile: cfg.Profile, Seed: cfg.Seed}
	if cfg.DryRun {
		rec := platform.NewRecorder(dryRunX, dryRunY)
		rec.Verbose = true
		opts.Emulator = rec
	}

	keeper := &keepalive.Keeper{}
	if err := keeper.Start(ctx, opts); err != nil {
		fatal(err)
	}

	if cfg.Headless {
		if err := keeper.Wait(); err != nil {
			fatal(err)
		}
		return
	}

	model := ui.NewModel(keeper, cfg.Profile)
	model.DryRun = cfg.DryRun
	model.SetVersion(appVersion)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	// Handle signals in a separate goroutine
	go func() {
		<-ctx.Done()
		log.Printf("keepbusy: interrupted")
		if err := keeper.Stop(); err != nil {
			log.Printf("keepbusy: error stopping keeper: %v", err)
		}
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("keepbusy: error running program: %v", err)
		_ = keeper.Stop()
		os.Exit(1)
	}
	if err := keeper.Stop(); err != nil {
		log.Printf("keepbusy: error stopping keeper: %v", err)
	}
	if err := keeper.Wait(); err != nil {
		fatal(err)
	}
}
