package engine

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

// Engine names. The table below is the single compiled-in source of truth;
// build variants only toggle enablement.
const (
	NameSCOM   = "scom"
	NameRing   = "ring"
	NameArray  = "array"
	NameJTAG   = "jtag"
	NameFSI    = "fsi"
	NameI2C    = "i2c"
	NameGPIO   = "gpio"
	NameSensor = "sensor"
	NameMPIPL  = "mpipl"
	NamePNOR   = "pnor"
	NameSP     = "sp"
	NameVPD    = "vpd"
	NameClock  = "clock"
	NamePower  = "power"
)

func requireMask(op Op, buf *databuf.Buffer, opts Options) error {
	if op != OpReadModifyWrite {
		return nil
	}
	if opts.Mask == nil {
		return fmt.Errorf("engine: read-modify-write without mask: %w", ErrBufferShape)
	}
	if opts.Mask.BitLen() != buf.BitLen() {
		return fmt.Errorf("engine: mask is %d bits, data is %d: %w",
			opts.Mask.BitLen(), buf.BitLen(), ErrBufferShape)
	}
	return nil
}

func requireChain(opts Options) error {
	if opts.Chain == "" {
		return fmt.Errorf("engine: scan operation without chain name: %w", ErrBufferShape)
	}
	return nil
}

func requireByteAligned(buf *databuf.Buffer) error {
	if buf.BitLen()%8 != 0 {
		return fmt.Errorf("engine: bus access needs byte-aligned buffer, got %d bits: %w",
			buf.BitLen(), ErrBufferShape)
	}
	return nil
}

// zerosLike builds an all-zero buffer with the same layout as buf.
func zerosLike(buf *databuf.Buffer, bits int) *databuf.Buffer {
	z, _ := databuf.NewWithOptions(bits, buf.WordWidth(), buf.Endianness())
	return z
}

// registerHandler serves engines whose resource is an addressable register.
func registerHandler(tr transport.Transport, ref transport.Ref, op Op, buf *databuf.Buffer, opts Options) uint32 {
	switch op {
	case OpRead:
		return tr.RegisterRead(ref, opts.Address, buf)
	case OpWrite:
		return tr.RegisterWrite(ref, opts.Address, buf)
	case OpReadModifyWrite:
		return tr.RegisterWriteMasked(ref, opts.Address, buf, opts.Mask)
	}
	return rc.EngineUnsupported
}

// scanHandler serves scan-chain engines. A plain read extracts the whole
// chain: the transport decides the length and the buffer is resized before
// filling, the one case where a call may change buffer size.
func scanHandler(tr transport.Transport, ref transport.Ref, op Op, buf *databuf.Buffer, opts Options) uint32 {
	switch op {
	case OpRead:
		bits, status := tr.ScanLength(ref, opts.Chain)
		if status != rc.EngineOK {
			return status
		}
		if err := buf.Resize(bits); err != nil {
			return rc.EngineCommFail
		}
		return tr.Scan(ref, opts.Chain, 0, zerosLike(buf, bits), buf)
	case OpScanIn, OpWrite:
		scratch := zerosLike(buf, buf.BitLen())
		return tr.Scan(ref, opts.Chain, opts.Offset, buf, scratch)
	case OpScanOut:
		// The caller's bits go into the chain; the capture replaces them.
		return tr.Scan(ref, opts.Chain, opts.Offset, buf.Clone(), buf)
	}
	return rc.EngineUnsupported
}

// busHandler serves byte-oriented serial-bus engines.
func busHandler(kind string) Handler {
	return func(tr transport.Transport, ref transport.Ref, op Op, buf *databuf.Buffer, opts Options) uint32 {
		addr := transport.BusAddr{Kind: kind, Bus: opts.Bus, Device: opts.Device, Offset: opts.BusOffset}
		switch op {
		case OpRead:
			return tr.BusRead(ref, addr, buf)
		case OpWrite:
			return tr.BusWrite(ref, addr, buf)
		}
		return rc.EngineUnsupported
	}
}

// fsiHandler addresses CFAM space through the register-style Address option
// but moves bytes like a bus.
func fsiHandler(tr transport.Transport, ref transport.Ref, op Op, buf *databuf.Buffer, opts Options) uint32 {
	addr := transport.BusAddr{Kind: NameFSI, Offset: opts.Address}
	switch op {
	case OpRead:
		return tr.BusRead(ref, addr, buf)
	case OpWrite:
		return tr.BusWrite(ref, addr, buf)
	}
	return rc.EngineUnsupported
}

func gpioHandler(tr transport.Transport, ref transport.Ref, op Op, buf *databuf.Buffer, opts Options) uint32 {
	switch op {
	case OpRead:
		level, status := tr.PinGet(ref, opts.Pin)
		if status != rc.EngineOK {
			return status
		}
		if level {
			_ = buf.SetBit(0)
		} else {
			_ = buf.ClearBit(0)
		}
		return rc.EngineOK
	case OpWrite:
		level, err := buf.TestBit(0)
		if err != nil {
			return rc.EngineUnsupported
		}
		return tr.PinSet(ref, opts.Pin, level)
	}
	return rc.EngineUnsupported
}

func controlHandler(action string) Handler {
	return func(tr transport.Transport, ref transport.Ref, op Op, buf *databuf.Buffer, opts Options) uint32 {
		name := action
		if opts.Action != "" {
			name = opts.Action
		}
		return tr.Control(ref, name, buf)
	}
}

// engineTable returns the full compiled-in table. Enablement is stamped by
// the registry from the build's capability set.
func engineTable() []Descriptor {
	scanValidate := func(op Op, buf *databuf.Buffer, opts Options) error {
		return requireChain(opts)
	}
	busValidate := func(op Op, buf *databuf.Buffer, opts Options) error {
		return requireByteAligned(buf)
	}

	return []Descriptor{
		{
			Name: NameSCOM, AddrWidth: 64,
			Ops:      Set(OpRead, OpWrite, OpReadModifyWrite),
			Validate: requireMask,
			Handle:   registerHandler,
		},
		{
			Name: NameClock, AddrWidth: 64,
			Ops:    Set(OpRead, OpWrite),
			Handle: registerHandler,
		},
		{
			Name: NameRing, AddrWidth: 32,
			Ops:      Set(OpRead, OpScanIn, OpScanOut),
			Validate: scanValidate,
			Handle:   scanHandler,
		},
		{
			Name: NameArray, AddrWidth: 32,
			Ops:      Set(OpRead, OpWrite, OpScanIn, OpScanOut),
			Validate: scanValidate,
			Handle:   scanHandler,
		},
		{
			Name: NameJTAG, AddrWidth: 32,
			Ops:      Set(OpScanIn, OpScanOut),
			Validate: scanValidate,
			Handle:   scanHandler,
		},
		{
			Name: NameFSI, AddrWidth: 32,
			Ops:      Set(OpRead, OpWrite),
			Validate: busValidate,
			Handle:   fsiHandler,
		},
		{
			Name: NameI2C, AddrWidth: 32,
			Ops:      Set(OpRead, OpWrite),
			Validate: busValidate,
			Handle:   busHandler(NameI2C),
		},
		{
			Name: NameGPIO, AddrWidth: 16,
			Ops:    Set(OpRead, OpWrite),
			Handle: gpioHandler,
		},
		{
			Name: NameSensor, AddrWidth: 32,
			Ops:      Set(OpRead),
			Validate: busValidate,
			Handle:   busHandler(NameSensor),
		},
		{
			Name: NameMPIPL, AddrWidth: 0,
			Ops:            Set(OpWrite),
			AllowNilBuffer: true,
			Handle:         controlHandler("mpipl"),
		},
		{
			Name: NamePNOR, AddrWidth: 64,
			Ops:      Set(OpRead, OpWrite),
			Validate: busValidate,
			Handle:   busHandler(NamePNOR),
		},
		{
			Name: NameSP, AddrWidth: 32,
			Ops:      Set(OpRead, OpWrite),
			Validate: busValidate,
			Handle:   busHandler(NameSP),
		},
		{
			Name: NameVPD, AddrWidth: 32,
			Ops:      Set(OpRead),
			Validate: busValidate,
			Handle:   busHandler(NameVPD),
		},
		{
			Name: NamePower, AddrWidth: 0,
			Ops:            Set(OpWrite),
			AllowNilBuffer: true,
			Handle:         controlHandler("power"),
		},
	}
}
