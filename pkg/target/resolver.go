package target

import (
	"errors"
	"fmt"
)

// Resolution failures. ErrTargetNotPresent means the position exists in the
// topology but is currently unreachable (fenced, powered off); callers may
// retry after loading a fresh snapshot. ErrNoSuchTarget is permanent for the
// current snapshot.
var (
	ErrNoSuchTarget     = errors.New("target: no such target")
	ErrTargetNotPresent = errors.New("target: target not present")
	ErrAmbiguousTarget  = errors.New("target: ambiguous target")
)

// Handle is a fully resolved position bound to its topology entries.
type Handle struct {
	Position Position
	Chip     *Chip
	Unit     *Unit
}

// Resolver maps positions onto a topology snapshot.
type Resolver struct {
	topo *Topology
}

// NewResolver creates a resolver over the given snapshot.
func NewResolver(topo *Topology) *Resolver {
	return &Resolver{topo: topo}
}

// Resolve maps a fully concrete position to a handle. Wildcards are rejected
// with ErrAmbiguousTarget; enumeration goes through Expand instead.
func (r *Resolver) Resolve(p Position) (Handle, error) {
	if p.HasWildcard() {
		return Handle{}, fmt.Errorf("target: %s has wildcard coordinates: %w", p, ErrAmbiguousTarget)
	}

	chip := r.findChip(p)
	if chip == nil {
		return Handle{}, fmt.Errorf("target: %s: %w", p, ErrNoSuchTarget)
	}
	if chip.State != StatePresent {
		return Handle{}, fmt.Errorf("target: %s is %s: %w", p, chip.State, ErrTargetNotPresent)
	}

	h := Handle{Position: p, Chip: chip}
	if p.UnitType == "" {
		return h, nil
	}

	for i := range chip.Units {
		u := &chip.Units[i]
		if u.Type != p.UnitType || u.ID != p.Unit {
			continue
		}
		if p.Thread >= u.Threads {
			return Handle{}, fmt.Errorf("target: %s thread %d of %d: %w", p, p.Thread, u.Threads, ErrNoSuchTarget)
		}
		if u.State != StatePresent {
			return Handle{}, fmt.Errorf("target: %s is %s: %w", p, u.State, ErrTargetNotPresent)
		}
		h.Unit = u
		return h, nil
	}
	return Handle{}, fmt.Errorf("target: %s: %w", p, ErrNoSuchTarget)
}

// Expand enumerates every concrete position matching p, wildcards included.
// Entries that are fenced or powered off are returned too; the caller
// decides whether to access them (and gets ErrTargetNotPresent if it tries).
func (r *Resolver) Expand(p Position) ([]Position, error) {
	var out []Position
	for i := range r.topo.Chips {
		chip := &r.topo.Chips[i]
		if !chipMatches(p, chip) {
			continue
		}
		if p.UnitType == "" {
			out = append(out, chipPosition(chip))
			continue
		}
		for j := range chip.Units {
			u := &chip.Units[j]
			if u.Type != p.UnitType {
				continue
			}
			if p.Unit != Any && p.Unit != u.ID {
				continue
			}
			for t := 0; t < u.Threads; t++ {
				if p.Thread != Any && p.Thread != t {
					continue
				}
				pos := chipPosition(chip)
				pos.UnitType = u.Type
				pos.Unit = u.ID
				pos.Thread = t
				out = append(out, pos)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("target: %s matches nothing: %w", p, ErrNoSuchTarget)
	}
	return out, nil
}

// State reports the reachability of the entry a concrete position names.
func (r *Resolver) State(p Position) (State, error) {
	chip := r.findChip(p)
	if chip == nil {
		return StateOff, fmt.Errorf("target: %s: %w", p, ErrNoSuchTarget)
	}
	if p.UnitType == "" {
		return chip.State, nil
	}
	for i := range chip.Units {
		u := &chip.Units[i]
		if u.Type == p.UnitType && u.ID == p.Unit {
			return u.State, nil
		}
	}
	return StateOff, fmt.Errorf("target: %s: %w", p, ErrNoSuchTarget)
}

func (r *Resolver) findChip(p Position) *Chip {
	for i := range r.topo.Chips {
		c := &r.topo.Chips[i]
		if c.Type == p.ChipType && c.Cage == p.Cage && c.Node == p.Node &&
			c.Slot == p.Slot && c.Pos == p.Pos {
			return c
		}
	}
	return nil
}

func chipMatches(p Position, c *Chip) bool {
	if p.ChipType != "all" && p.ChipType != c.Type {
		return false
	}
	match := func(want, have int) bool { return want == Any || want == have }
	return match(p.Cage, c.Cage) && match(p.Node, c.Node) &&
		match(p.Slot, c.Slot) && match(p.Pos, c.Pos)
}

func chipPosition(c *Chip) Position {
	return Position{
		ChipType: c.Type,
		Cage:     c.Cage,
		Node:     c.Node,
		Slot:     c.Slot,
		Pos:      c.Pos,
	}
}
