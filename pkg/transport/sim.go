package transport

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
)

// Call records one primitive invocation for inspection within tests.
type Call struct {
	Op    string
	Ref   Ref
	Addr  uint64
	Chain string
	Bus   BusAddr
	Pin   uint32
	Bits  int
}

// SimTransport is an in-memory transport useful for unit tests and the
// simulator probe. It keeps register, chain, bus and pin state per target,
// records every invocation, and can inject deterministic behavior through
// the On* hooks or a forced status.
type SimTransport struct {
	// ForceStatus, when nonzero, is returned by every primitive without
	// touching state.
	ForceStatus uint32

	// OnRegisterRead, when set, supplies register read data.
	OnRegisterRead func(ref Ref, addr uint64, buf *databuf.Buffer) uint32
	// OnScan, when set, supplies scan capture data.
	OnScan func(ref Ref, chain string, offset int, in, out *databuf.Buffer) uint32

	// ChainLengths overrides the bit length reported for named chains.
	ChainLengths map[string]int

	regs  map[string]map[uint64]*databuf.Buffer
	bus   map[string]map[string][]byte
	pins  map[string]map[uint32]bool
	calls []Call
}

// NewSimTransport creates an empty simulator.
func NewSimTransport() *SimTransport {
	return &SimTransport{
		regs: make(map[string]map[uint64]*databuf.Buffer),
		bus:  make(map[string]map[string][]byte),
		pins: make(map[string]map[uint32]bool),
	}
}

// Calls returns a copy of the recorded invocations.
func (s *SimTransport) Calls() []Call {
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many primitives have been invoked.
func (s *SimTransport) CallCount() int { return len(s.calls) }

func (s *SimTransport) record(c Call) {
	s.calls = append(s.calls, c)
}

func refKey(ref Ref) string {
	return fmt.Sprintf("%s/%d/%s/%d/%d", ref.ChipType, ref.Proc, ref.UnitType, ref.Unit, ref.Thread)
}

func busKey(a BusAddr) string {
	return fmt.Sprintf("%s/%d/%d/%d", a.Kind, a.Bus, a.Device, a.Offset)
}

func (s *SimTransport) RegisterRead(ref Ref, addr uint64, buf *databuf.Buffer) uint32 {
	s.record(Call{Op: "register-read", Ref: ref, Addr: addr, Bits: buf.BitLen()})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	if s.OnRegisterRead != nil {
		return s.OnRegisterRead(ref, addr, buf)
	}
	if stored, found := s.regs[refKey(ref)][addr]; found {
		_ = buf.CopyFrom(stored)
	}
	return ok
}

func (s *SimTransport) RegisterWrite(ref Ref, addr uint64, buf *databuf.Buffer) uint32 {
	s.record(Call{Op: "register-write", Ref: ref, Addr: addr, Bits: buf.BitLen()})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	s.storeRegister(ref, addr, buf.Clone())
	return ok
}

func (s *SimTransport) RegisterWriteMasked(ref Ref, addr uint64, buf, mask *databuf.Buffer) uint32 {
	s.record(Call{Op: "register-write-masked", Ref: ref, Addr: addr, Bits: buf.BitLen()})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	current, found := s.regs[refKey(ref)][addr]
	if !found {
		// Unwritten registers read as zero in the caller's buffer layout.
		current = buf.Clone()
		for i := 0; i < current.BitLen(); i++ {
			_ = current.ClearBit(i)
		}
	}
	merged := current.Clone()
	for i := 0; i < buf.BitLen() && i < merged.BitLen(); i++ {
		m, _ := mask.TestBit(i)
		if !m {
			continue
		}
		v, _ := buf.TestBit(i)
		if v {
			_ = merged.SetBit(i)
		} else {
			_ = merged.ClearBit(i)
		}
	}
	s.storeRegister(ref, addr, merged)
	return ok
}

func (s *SimTransport) storeRegister(ref Ref, addr uint64, buf *databuf.Buffer) {
	key := refKey(ref)
	if s.regs[key] == nil {
		s.regs[key] = make(map[uint64]*databuf.Buffer)
	}
	s.regs[key][addr] = buf
}

func (s *SimTransport) Scan(ref Ref, chain string, offset int, in, out *databuf.Buffer) uint32 {
	s.record(Call{Op: "scan", Ref: ref, Chain: chain, Bits: in.BitLen()})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	if s.OnScan != nil {
		return s.OnScan(ref, chain, offset, in, out)
	}
	// Default chain behavior: capture equals what was shifted in.
	_ = out.CopyFrom(in)
	return ok
}

func (s *SimTransport) ScanLength(ref Ref, chain string) (int, uint32) {
	s.record(Call{Op: "scan-length", Ref: ref, Chain: chain})
	if s.ForceStatus != 0 {
		return 0, s.ForceStatus
	}
	if n, found := s.ChainLengths[chain]; found {
		return n, ok
	}
	return 128, ok
}

func (s *SimTransport) BusRead(ref Ref, addr BusAddr, buf *databuf.Buffer) uint32 {
	s.record(Call{Op: "bus-read", Ref: ref, Bus: addr, Bits: buf.BitLen()})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	if stored, found := s.bus[refKey(ref)][busKey(addr)]; found {
		_ = buf.SetBytes(stored)
	}
	return ok
}

func (s *SimTransport) BusWrite(ref Ref, addr BusAddr, buf *databuf.Buffer) uint32 {
	s.record(Call{Op: "bus-write", Ref: ref, Bus: addr, Bits: buf.BitLen()})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	key := refKey(ref)
	if s.bus[key] == nil {
		s.bus[key] = make(map[string][]byte)
	}
	s.bus[key][busKey(addr)] = buf.Bytes()
	return ok
}

func (s *SimTransport) PinGet(ref Ref, pin uint32) (bool, uint32) {
	s.record(Call{Op: "pin-get", Ref: ref, Pin: pin})
	if s.ForceStatus != 0 {
		return false, s.ForceStatus
	}
	return s.pins[refKey(ref)][pin], ok
}

func (s *SimTransport) PinSet(ref Ref, pin uint32, level bool) uint32 {
	s.record(Call{Op: "pin-set", Ref: ref, Pin: pin})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	key := refKey(ref)
	if s.pins[key] == nil {
		s.pins[key] = make(map[uint32]bool)
	}
	s.pins[key][pin] = level
	return ok
}

func (s *SimTransport) Control(ref Ref, action string, buf *databuf.Buffer) uint32 {
	bits := 0
	if buf != nil {
		bits = buf.BitLen()
	}
	s.record(Call{Op: "control:" + action, Ref: ref, Bits: bits})
	if s.ForceStatus != 0 {
		return s.ForceStatus
	}
	return ok
}

var _ Transport = (*SimTransport)(nil)
