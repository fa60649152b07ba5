// Package transport specifies the boundary to the hardware-access library:
// a small set of primitive operations against processor buses, each
// reporting a raw engine-domain status. Statuses are numeric because the
// engine library's error vocabulary is foreign to this module; translation
// into the client domain happens in the bridge, never here.
package transport

import (
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
)

// Ref is the engine library's addressing of a resolved target.
type Ref struct {
	ChipType string
	Proc     int
	UnitType string
	Unit     int
	Thread   int
}

// BusAddr addresses one byte-oriented bus resource (FSI CFAM space, I2C
// device offsets, PNOR flash, SP mailbox, VPD keywords, sensors).
type BusAddr struct {
	Kind   string
	Bus    uint32
	Device uint32
	Offset uint64
}

// Transport is the primitive operation set the engine registry dispatches
// onto. Implementations block for the duration of the hardware transaction;
// scan operations can take seconds. Callers own serialization per physical
// target.
type Transport interface {
	// RegisterRead fills buf from the addressed register (SCOM, clock
	// control). The buffer's bit length selects the access width.
	RegisterRead(ref Ref, addr uint64, buf *databuf.Buffer) uint32
	// RegisterWrite writes buf to the addressed register.
	RegisterWrite(ref Ref, addr uint64, buf *databuf.Buffer) uint32
	// RegisterWriteMasked updates only the register bits set in mask.
	RegisterWriteMasked(ref Ref, addr uint64, buf, mask *databuf.Buffer) uint32
	// Scan shifts in.BitLen() bits into the named chain at the given bit
	// offset and captures the outgoing bits into out.
	Scan(ref Ref, chain string, offset int, in, out *databuf.Buffer) uint32
	// ScanLength reports the bit length of the named chain.
	ScanLength(ref Ref, chain string) (int, uint32)
	// BusRead fills buf from a byte-oriented bus resource.
	BusRead(ref Ref, addr BusAddr, buf *databuf.Buffer) uint32
	// BusWrite writes buf to a byte-oriented bus resource.
	BusWrite(ref Ref, addr BusAddr, buf *databuf.Buffer) uint32
	// PinGet samples one GPIO pin.
	PinGet(ref Ref, pin uint32) (bool, uint32)
	// PinSet drives one GPIO pin.
	PinSet(ref Ref, pin uint32, level bool) uint32
	// Control triggers a named side-effecting action (mpipl, power on/off).
	// buf carries action-specific payload and may be nil.
	Control(ref Ref, action string, buf *databuf.Buffer) uint32
}

// ok is the engine-domain success status shared by implementations here.
const ok = rc.EngineOK
