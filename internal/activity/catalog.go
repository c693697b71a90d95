package activity

import (
	"fmt"

	"github.com/stigoleg/keep-busy/internal/profile"
)

// Catalog is the fixed, ordered list of operations eligible for selection.
// A variant listed several times is picked proportionally more often.
type Catalog struct {
	ops []Operation
}

// NewCatalog expands the profile entries into operations whose clicks centre on origin.
func NewCatalog(entries []profile.Operation, origin Point) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, profile.ErrEmptyCatalog
	}
	var ops []Operation
	for i, entry := range entries {
		kind, err := ParseKind(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		op := Operation{Kind: kind, Stub: entry.Stub}
		switch kind {
		case KindClick:
			op.Origin = origin
		case KindTypeCode:
			op.Code, op.Log = DefaultCode, DefaultLog
			if entry.Code != "" {
				op.Code = entry.Code
			}
			if entry.Log != "" {
				op.Log = entry.Log
			}
		}
		for n := 0; n < entry.Times(); n++ {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, profile.ErrEmptyCatalog
	}
	return &Catalog{ops: ops}, nil
}

// Len returns the number of slots.
func (c *Catalog) Len() int {
	return len(c.ops)
}

// At returns the operation in slot i.
func (c *Catalog) At(i int) Operation {
	return c.ops[i]
}

// Counts returns how many slots each kind occupies.
func (c *Catalog) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, op := range c.ops {
		counts[op.Kind]++
	}
	return counts
}
