package target

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chewxy/sexp"
)

// State describes whether a topology entry is reachable.
type State uint8

const (
	StatePresent State = iota
	StateFenced
	StateOff
)

func (s State) String() string {
	switch s {
	case StatePresent:
		return "present"
	case StateFenced:
		return "fenced"
	case StateOff:
		return "off"
	}
	return "unknown"
}

func parseState(s string) (State, error) {
	switch s {
	case "present":
		return StatePresent, nil
	case "fenced":
		return StateFenced, nil
	case "off":
		return StateOff, nil
	}
	return StatePresent, fmt.Errorf("target: unknown state %q", s)
}

// Unit is one sub-chip entity (core, cache, I/O hub, ...).
type Unit struct {
	Type    string
	ID      int
	Threads int
	State   State
}

// Chip is one addressable chip instance in the topology.
type Chip struct {
	Type  string
	Cage  int
	Node  int
	Slot  int
	Pos   int
	State State
	Units []Unit
}

// Topology is an immutable snapshot of the hardware the process can reach.
// Refreshing after a hardware change means loading a new snapshot; the
// resolver never mutates one.
type Topology struct {
	Chips []Chip
}

// LoadTopologyFile reads an s-expression topology snapshot from disk.
func LoadTopologyFile(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("target: open topology: %w", err)
	}
	defer f.Close()
	return LoadTopology(f)
}

// LoadTopology parses a topology snapshot of the form:
//
//	(topology
//	  (chip (type pu) (cage 0) (node 0) (slot 0) (pos 0) (state present)
//	    (unit (type core) (id 0) (threads 4) (state present))))
func LoadTopology(r io.Reader) (*Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("target: read topology: %w", err)
	}
	return ParseTopology(string(data))
}

// ParseTopology parses a topology snapshot from a string.
func ParseTopology(input string) (*Topology, error) {
	sexps, err := sexp.ParseString(input)
	if err != nil {
		return nil, fmt.Errorf("target: parse topology: %w", err)
	}
	topo := &Topology{}
	for _, s := range sexps {
		elems := listElems(s)
		if len(elems) == 0 || atomText(elems[0]) != "topology" {
			continue
		}
		for _, node := range elems[1:] {
			chip, err := parseChip(node)
			if err != nil {
				return nil, err
			}
			topo.Chips = append(topo.Chips, chip)
		}
	}
	if len(topo.Chips) == 0 {
		return nil, fmt.Errorf("target: topology snapshot contains no chips")
	}
	return topo, nil
}

func parseChip(node sexp.Sexp) (Chip, error) {
	elems := listElems(node)
	if len(elems) == 0 || atomText(elems[0]) != "chip" {
		return Chip{}, fmt.Errorf("target: expected (chip ...), got %s", node)
	}
	chip := Chip{State: StatePresent}
	for _, field := range elems[1:] {
		kv := listElems(field)
		if len(kv) < 2 {
			continue
		}
		switch atomText(kv[0]) {
		case "type":
			chip.Type = atomText(kv[1])
		case "cage":
			v, err := fieldInt(kv)
			if err != nil {
				return Chip{}, err
			}
			chip.Cage = v
		case "node":
			v, err := fieldInt(kv)
			if err != nil {
				return Chip{}, err
			}
			chip.Node = v
		case "slot":
			v, err := fieldInt(kv)
			if err != nil {
				return Chip{}, err
			}
			chip.Slot = v
		case "pos":
			v, err := fieldInt(kv)
			if err != nil {
				return Chip{}, err
			}
			chip.Pos = v
		case "state":
			st, err := parseState(atomText(kv[1]))
			if err != nil {
				return Chip{}, err
			}
			chip.State = st
		case "unit":
			unit, err := parseUnit(kv)
			if err != nil {
				return Chip{}, err
			}
			chip.Units = append(chip.Units, unit)
		}
	}
	if chip.Type == "" {
		return Chip{}, fmt.Errorf("target: chip entry missing type")
	}
	return chip, nil
}

func parseUnit(kv []sexp.Sexp) (Unit, error) {
	unit := Unit{Threads: 1, State: StatePresent}
	for _, field := range kv[1:] {
		sub := listElems(field)
		if len(sub) < 2 {
			continue
		}
		switch atomText(sub[0]) {
		case "type":
			unit.Type = atomText(sub[1])
		case "id":
			v, err := fieldInt(sub)
			if err != nil {
				return Unit{}, err
			}
			unit.ID = v
		case "threads":
			v, err := fieldInt(sub)
			if err != nil {
				return Unit{}, err
			}
			unit.Threads = v
		case "state":
			st, err := parseState(atomText(sub[1]))
			if err != nil {
				return Unit{}, err
			}
			unit.State = st
		}
	}
	if unit.Type == "" {
		return Unit{}, fmt.Errorf("target: unit entry missing type")
	}
	return unit, nil
}

func fieldInt(kv []sexp.Sexp) (int, error) {
	if len(kv) < 2 {
		return 0, fmt.Errorf("target: field %s missing value", kv[0])
	}
	v, err := strconv.Atoi(atomText(kv[1]))
	if err != nil {
		return 0, fmt.Errorf("target: field %s: %w", kv[0], err)
	}
	return v, nil
}

// atomText extracts the text of an atom. Sexp nodes expose their content
// only through fmt.Formatter.
func atomText(s sexp.Sexp) string {
	return fmt.Sprintf("%s", s)
}

// listElems flattens one s-expression list into its elements. Atoms yield a
// single-element slice. Tail() of a one-element list is an empty list, not
// nil, so each step checks LeafCount before touching Head.
func listElems(s sexp.Sexp) []sexp.Sexp {
	if s == nil {
		return nil
	}
	if s.IsLeaf() {
		return []sexp.Sexp{s}
	}
	var elems []sexp.Sexp
	for cur := s; cur != nil && !cur.IsLeaf(); cur = cur.Tail() {
		if cur.LeafCount() == 0 {
			break
		}
		if h := cur.Head(); h != nil {
			elems = append(elems, h)
		}
	}
	return elems
}

// DefaultTopology is the compiled-in snapshot used when no topology file is
// supplied: two processor chips with four cores of four threads each, core 3
// of the second chip fenced, plus one powered-off memory buffer.
func DefaultTopology() *Topology {
	cores := func(fenced int) []Unit {
		units := make([]Unit, 4)
		for i := range units {
			units[i] = Unit{Type: "core", ID: i, Threads: 4, State: StatePresent}
			if i == fenced {
				units[i].State = StateFenced
			}
		}
		return units
	}
	return &Topology{Chips: []Chip{
		{Type: "pu", Pos: 0, State: StatePresent, Units: cores(-1)},
		{Type: "pu", Pos: 1, State: StatePresent, Units: cores(3)},
		{Type: "mem", Pos: 0, State: StateOff},
	}}
}
