// Package target models hardware positions (chip/unit/thread coordinates)
// and resolves them against a topology snapshot into handles the transport
// layer can address.
package target

import (
	"fmt"
	"strings"
)

// Any marks a wildcard coordinate. Wildcards are legal only for enumeration;
// access APIs require every coordinate concrete.
const Any = -1

// Position is the topological address of a hardware unit.
type Position struct {
	ChipType string
	Cage     int
	Node     int
	Slot     int
	Pos      int
	UnitType string
	Unit     int
	Thread   int
}

// HasWildcard reports whether any coordinate is a wildcard.
func (p Position) HasWildcard() bool {
	if p.Cage == Any || p.Node == Any || p.Slot == Any || p.Pos == Any {
		return true
	}
	if p.UnitType != "" && (p.Unit == Any || p.Thread == Any) {
		return true
	}
	return p.ChipType == "all"
}

// String renders the canonical position syntax, e.g. "pu.core:k0:n0:s0:p01:c3:t2".
func (p Position) String() string {
	var sb strings.Builder
	sb.WriteString(p.ChipType)
	if p.UnitType != "" {
		sb.WriteByte('.')
		sb.WriteString(p.UnitType)
	}
	coord := func(axis byte, v int) {
		sb.WriteByte(':')
		sb.WriteByte(axis)
		if v == Any {
			sb.WriteString("all")
		} else if axis == 'p' {
			fmt.Fprintf(&sb, "%02d", v)
		} else {
			fmt.Fprintf(&sb, "%d", v)
		}
	}
	coord('k', p.Cage)
	coord('n', p.Node)
	coord('s', p.Slot)
	coord('p', p.Pos)
	if p.UnitType != "" {
		coord('c', p.Unit)
		coord('t', p.Thread)
	}
	return sb.String()
}
