package engine

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

func allEngines() Capabilities {
	return Capabilities{AllEngines: true}
}

func TestLookupEnabledAndDisabled(t *testing.T) {
	reg := NewRegistry(Capabilities{Engines: []string{NameSCOM, NameRing}})

	if _, err := reg.Lookup(NameSCOM); err != nil {
		t.Errorf("Lookup(scom): %v", err)
	}
	if _, err := reg.Lookup(NameI2C); !errors.Is(err, ErrEngineDisabled) {
		t.Errorf("Lookup(i2c) err = %v, want ErrEngineDisabled", err)
	}
	if _, err := reg.Lookup("nonexistent123"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("Lookup(nonexistent123) err = %v, want ErrUnknownEngine", err)
	}

	// Describe works regardless of enablement.
	d, err := reg.Describe(NameI2C)
	if err != nil {
		t.Fatalf("Describe(i2c): %v", err)
	}
	if d.Enabled {
		t.Errorf("i2c marked enabled in reduced capability set")
	}
}

func TestRegistryNamesComplete(t *testing.T) {
	reg := NewRegistry(allEngines())
	names := reg.Names()
	want := []string{
		NameArray, NameClock, NameFSI, NameGPIO, NameI2C, NameJTAG,
		NameMPIPL, NamePNOR, NamePower, NameRing, NameSCOM, NameSensor,
		NameSP, NameVPD,
	}
	if len(names) != len(want) {
		t.Fatalf("got %d engines, want %d: %v", len(names), len(want), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestOpSet(t *testing.T) {
	s := Set(OpRead, OpReadModifyWrite)
	if !s.Has(OpRead) || !s.Has(OpReadModifyWrite) {
		t.Errorf("OpSet missing members: %v", s.Ops())
	}
	if s.Has(OpWrite) || s.Has(OpScanIn) {
		t.Errorf("OpSet has unexpected members: %v", s.Ops())
	}
}

func TestSCOMValidateRequiresMask(t *testing.T) {
	reg := NewRegistry(allEngines())
	d, err := reg.Lookup(NameSCOM)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	buf := databuf.New(64)
	if err := d.Validate(OpReadModifyWrite, buf, Options{}); !errors.Is(err, ErrBufferShape) {
		t.Errorf("RMW without mask err = %v, want ErrBufferShape", err)
	}

	short := databuf.New(32)
	if err := d.Validate(OpReadModifyWrite, buf, Options{Mask: short}); !errors.Is(err, ErrBufferShape) {
		t.Errorf("RMW with short mask err = %v, want ErrBufferShape", err)
	}

	mask := databuf.New(64)
	if err := d.Validate(OpReadModifyWrite, buf, Options{Mask: mask}); err != nil {
		t.Errorf("RMW with matching mask: %v", err)
	}
	if err := d.Validate(OpRead, buf, Options{}); err != nil {
		t.Errorf("plain read needs no mask: %v", err)
	}
}

func TestScanHandlerResizesOnRead(t *testing.T) {
	reg := NewRegistry(allEngines())
	d, err := reg.Lookup(NameRing)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	sim := transport.NewSimTransport()
	sim.ChainLengths = map[string]int{"eq_func": 96}

	buf := databuf.New(32)
	status := d.Handle(sim, transport.Ref{ChipType: "pu"}, OpRead, buf, Options{Chain: "eq_func"})
	if status != rc.EngineOK {
		t.Fatalf("scan read status = %#x", status)
	}
	if buf.BitLen() != 96 {
		t.Errorf("buffer resized to %d bits, want 96", buf.BitLen())
	}
}

func TestJTAGScanShiftsCallerData(t *testing.T) {
	reg := NewRegistry(allEngines())
	d, err := reg.Lookup(NameJTAG)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	sim := transport.NewSimTransport()
	var shifted uint64
	sim.OnScan = func(_ transport.Ref, _ string, _ int, in, out *databuf.Buffer) uint32 {
		shifted, _ = in.Get(0, 32)
		_ = out.Set(0, 32, 0xCAFEF00D)
		return rc.EngineOK
	}

	buf := databuf.New(32)
	_ = buf.Set(0, 32, 0xDEADBEEF)
	status := d.Handle(sim, transport.Ref{ChipType: "pu"}, OpScanOut, buf, Options{Chain: "tap0"})
	if status != rc.EngineOK {
		t.Fatalf("scan-out status = %#x", status)
	}
	if shifted != 0xDEADBEEF {
		t.Errorf("chain received %#x, want the caller's 0xDEADBEEF", shifted)
	}
	if got, _ := buf.Get(0, 32); got != 0xCAFEF00D {
		t.Errorf("capture = %#x, want 0xCAFEF00D", got)
	}
}

func TestScanReadBadLengthReportsCommFail(t *testing.T) {
	reg := NewRegistry(allEngines())
	d, err := reg.Lookup(NameRing)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	sim := transport.NewSimTransport()
	sim.ChainLengths = map[string]int{"eq_func": -1}

	buf := databuf.New(32)
	status := d.Handle(sim, transport.Ref{ChipType: "pu"}, OpRead, buf, Options{Chain: "eq_func"})
	if status != rc.EngineCommFail {
		t.Errorf("bad chain length status = %#x, want EngineCommFail", status)
	}
}

func TestGPIOHandlerRoundTrip(t *testing.T) {
	reg := NewRegistry(allEngines())
	d, err := reg.Lookup(NameGPIO)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	sim := transport.NewSimTransport()
	ref := transport.Ref{ChipType: "pu"}

	high := databuf.New(1)
	_ = high.SetBit(0)
	if status := d.Handle(sim, ref, OpWrite, high, Options{Pin: 7}); status != rc.EngineOK {
		t.Fatalf("gpio write status = %#x", status)
	}

	out := databuf.New(1)
	if status := d.Handle(sim, ref, OpRead, out, Options{Pin: 7}); status != rc.EngineOK {
		t.Fatalf("gpio read status = %#x", status)
	}
	if level, _ := out.TestBit(0); !level {
		t.Errorf("pin read back low, want high")
	}
}
