// Package engine defines the registry of named hardware engines and the
// dispatch rules that map each engine's addressing onto the transport's
// primitive operations.
package engine

import (
	"errors"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

// Op is one logical hardware operation.
type Op uint8

const (
	OpRead Op = iota
	OpWrite
	OpReadModifyWrite
	OpScanIn
	OpScanOut
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpReadModifyWrite:
		return "read-modify-write"
	case OpScanIn:
		return "scan-in"
	case OpScanOut:
		return "scan-out"
	}
	return "unknown"
}

// OpSet is a bitmask of supported operations.
type OpSet uint8

// Set builds an OpSet from its members.
func Set(ops ...Op) OpSet {
	var s OpSet
	for _, op := range ops {
		s |= 1 << op
	}
	return s
}

// Has reports whether the set contains op.
func (s OpSet) Has(op Op) bool { return s&(1<<op) != 0 }

// Ops lists the members in declaration order.
func (s OpSet) Ops() []Op {
	var out []Op
	for op := OpRead; op <= OpScanOut; op++ {
		if s.Has(op) {
			out = append(out, op)
		}
	}
	return out
}

// Options carries the engine-specific addressing of one request. Which
// fields matter is the engine's address-decoding rule; the bridge passes
// them through opaquely.
type Options struct {
	// Address is a register or CFAM address (scom, clock, fsi).
	Address uint64
	// Mask selects the bits updated by a read-modify-write.
	Mask *databuf.Buffer
	// Chain names a scan chain (ring, array, jtag).
	Chain string
	// Offset is a bit offset into a scan chain.
	Offset int
	// Bus, Device and BusOffset address serial-bus resources (i2c, sensor,
	// pnor, sp, vpd).
	Bus       uint32
	Device    uint32
	BusOffset uint64
	// Pin addresses one GPIO pin.
	Pin uint32
	// Action names a control operation (power, mpipl).
	Action string
}

// ErrBufferShape signals a request whose buffer layout does not satisfy the
// engine's address-decoding rule.
var ErrBufferShape = errors.New("engine: invalid buffer shape")

// Handler executes one validated operation against the transport and
// returns the raw engine-domain status.
type Handler func(tr transport.Transport, ref transport.Ref, op Op, buf *databuf.Buffer, opts Options) uint32

// Descriptor describes one engine: its name, address width, supported
// operation set, shape rule and handler. Descriptors are immutable after
// registry construction.
type Descriptor struct {
	Name      string
	AddrWidth int
	Ops       OpSet
	Enabled   bool
	// AllowNilBuffer permits operations that carry no data payload
	// (control-style engines such as power and mpipl).
	AllowNilBuffer bool

	// Validate applies the engine's address-decoding rule before any
	// transport call. A nil Validate accepts every request.
	Validate func(op Op, buf *databuf.Buffer, opts Options) error
	Handle   Handler
}
