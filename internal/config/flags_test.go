package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantName   string
		wantWarmup int
		wantDelay  [2]int
		wantErr    string
	}{
		{
			name:       "defaults to rich",
			args:       nil,
			wantName:   "rich",
			wantWarmup: 10,
			wantDelay:  [2]int{1, 5},
		},
		{
			name:       "conservative short flag",
			args:       []string{"-p", "conservative"},
			wantName:   "conservative",
			wantWarmup: 30,
			wantDelay:  [2]int{3, 33},
		},
		{
			name:       "warm-up override in seconds",
			args:       []string{"--profile", "conservative", "-w", "5"},
			wantName:   "conservative",
			wantWarmup: 5,
			wantDelay:  [2]int{3, 33},
		},
		{
			name:       "warm-up and delay overrides",
			args:       []string{"--warmup", "1m", "--delay", "2-8"},
			wantName:   "rich",
			wantWarmup: 60,
			wantDelay:  [2]int{2, 8},
		},
		{
			name:    "unknown profile",
			args:    []string{"-p", "frantic"},
			wantErr: "unknown profile",
		},
		{
			name:    "bad delay",
			args:    []string{"--delay", "9-1"},
			wantErr: "Invalid delay range",
		},
		{
			name:    "bad warm-up",
			args:    []string{"--warmup", "soon"},
			wantErr: "Invalid duration format",
		},
		{
			name:    "unknown flag",
			args:    []string{"--turbo"},
			wantErr: "flag provided but not defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseArgs("test-version", tt.args, &bytes.Buffer{})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, cfg.Profile.Name)
			assert.Equal(t, tt.wantWarmup, cfg.Profile.WarmupSeconds)
			assert.Equal(t, tt.wantDelay, cfg.Profile.DelayRangeSeconds)
		})
	}
}

func TestParseArgsModes(t *testing.T) {
	cfg, err := ParseArgs("v", []string{"--dry-run", "--headless", "--seed", "42", "--log", "x.log"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Headless)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "x.log", cfg.LogFile)
}

func TestParseArgsExitPaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "version", args: []string{"-v"}, want: "Keep-Busy Version: 1.2.3"},
		{name: "list profiles", args: []string{"--list-profiles"}, want: "conservative-stubs"},
		{name: "help", args: []string{"-h"}, want: "Usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := ParseArgs("1.2.3", tt.args, &out)
			assert.ErrorIs(t, err, ErrExit)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestFormatError(t *testing.T) {
	_, err := ParseArgs("v", []string{"--delay", "x"}, &bytes.Buffer{})
	require.Error(t, err)

	rendered := formatError(err)
	assert.Contains(t, rendered, "Invalid delay range")
	assert.True(t, strings.Contains(rendered, "Valid formats"))
}
