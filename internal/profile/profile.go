// Package profile holds the configuration object that drives the activity engine:
// the warm-up, the operation catalog and the pause between operations.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Operation kinds recognised in a catalog.
const (
	KindClick        = "click"
	KindSwitchWindow = "switch-window"
	KindScroll       = "scroll"
	KindSwitchTab    = "switch-tab"
	KindTypeCode     = "type-code"
)

// DefaultName is the profile used when none is requested.
const DefaultName = "rich"

var knownKinds = map[string]bool{
	KindClick:        true,
	KindSwitchWindow: true,
	KindScroll:       true,
	KindSwitchTab:    true,
	KindTypeCode:     true,
}

var (
	ErrUnknownProfile = errors.New("unknown profile")
	ErrEmptyCatalog   = errors.New("operation catalog is empty")
)

// Operation describes one catalog entry.
type Operation struct {
	Kind string `yaml:"kind"`

	// Weight repeats the entry; zero means 1.
	Weight int `yaml:"weight,omitempty"`

	// Stub makes the entry log only, without touching the input devices.
	Stub bool `yaml:"stub,omitempty"`

	// Code and Log override the text typed by type-code entries.
	Code string `yaml:"code,omitempty"`
	Log  string `yaml:"log,omitempty"`
}

// Times returns how many catalog slots the entry occupies.
func (o Operation) Times() int {
	if o.Weight == 0 {
		return 1
	}
	return o.Weight
}

// Profile is one complete engine configuration.
type Profile struct {
	Name              string      `yaml:"name"`
	Description       string      `yaml:"description"`
	WarmupSeconds     int         `yaml:"warmupSeconds"`
	Operations        []Operation `yaml:"operationCatalog"`
	DelayRangeSeconds [2]int      `yaml:"delayRangeSeconds"`
}

// DelayMin returns the lower pause bound in seconds.
func (p Profile) DelayMin() int { return p.DelayRangeSeconds[0] }

// DelayMax returns the upper pause bound in seconds.
func (p Profile) DelayMax() int { return p.DelayRangeSeconds[1] }

// Validate checks that the profile can drive the engine.
func (p Profile) Validate() error {
	if len(p.Operations) == 0 {
		return fmt.Errorf("profile %q: %w", p.Name, ErrEmptyCatalog)
	}
	for i, op := range p.Operations {
		if !knownKinds[op.Kind] {
			return fmt.Errorf("profile %q: entry %d: unknown operation kind %q", p.Name, i, op.Kind)
		}
		if op.Weight < 0 {
			return fmt.Errorf("profile %q: entry %d: weight must not be negative", p.Name, i)
		}
	}
	if p.WarmupSeconds < 0 {
		return fmt.Errorf("profile %q: warm-up must not be negative", p.Name)
	}
	if p.DelayMin() < 0 {
		return fmt.Errorf("profile %q: delay minimum must not be negative", p.Name)
	}
	if p.DelayMin() > p.DelayMax() {
		return fmt.Errorf("profile %q: delay range [%d,%d] is inverted", p.Name, p.DelayMin(), p.DelayMax())
	}
	return nil
}

// Overrides adjusts a profile from the command line. Nil fields keep the profile value.
type Overrides struct {
	WarmupSeconds *int
	DelayMin      *int
	DelayMax      *int
}

// WithOverrides returns a copy of p with the overrides applied.
func (p Profile) WithOverrides(o Overrides) Profile {
	out := p
	out.Operations = append([]Operation(nil), p.Operations...)
	if o.WarmupSeconds != nil {
		out.WarmupSeconds = *o.WarmupSeconds
	}
	if o.DelayMin != nil {
		out.DelayRangeSeconds[0] = *o.DelayMin
	}
	if o.DelayMax != nil {
		out.DelayRangeSeconds[1] = *o.DelayMax
	}
	return out
}

//go:embed profiles.yaml
var builtinYAML []byte

var (
	loadOnce sync.Once
	builtins map[string]Profile
	loadErr  error
)

type document struct {
	Profiles []Profile `yaml:"profiles"`
}

// Parse decodes a profiles document and validates every profile in it.
func Parse(data []byte) (map[string]Profile, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	out := make(map[string]Profile, len(doc.Profiles))
	for _, p := range doc.Profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := out[p.Name]; dup {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		out[p.Name] = p
	}
	return out, nil
}

func load() (map[string]Profile, error) {
	loadOnce.Do(func() {
		builtins, loadErr = Parse(builtinYAML)
	})
	return builtins, loadErr
}

// Lookup returns the built-in profile with the given name.
func Lookup(name string) (Profile, error) {
	all, err := load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := all[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownProfile, name, Names())
	}
	return p.WithOverrides(Overrides{}), nil
}

// Names lists the built-in profiles in alphabetical order.
func Names() []string {
	all, _ := load()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
