package transport

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
)

func TestSimRegisterReadAfterWrite(t *testing.T) {
	sim := NewSimTransport()
	ref := Ref{ChipType: "pu", Proc: 0}

	in := databuf.New(64)
	if err := in.Set(0, 64, 0x1122334455667788); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if status := sim.RegisterWrite(ref, 0x800, in); status != rc.EngineOK {
		t.Fatalf("RegisterWrite status = %#x", status)
	}

	out := databuf.New(64)
	if status := sim.RegisterRead(ref, 0x800, out); status != rc.EngineOK {
		t.Fatalf("RegisterRead status = %#x", status)
	}
	got, _ := out.Get(0, 64)
	if got != 0x1122334455667788 {
		t.Errorf("read back %#x, want 0x1122334455667788", got)
	}

	if sim.CallCount() != 2 {
		t.Errorf("call count = %d, want 2", sim.CallCount())
	}
}

func TestSimMaskedWriteMergesBits(t *testing.T) {
	sim := NewSimTransport()
	ref := Ref{ChipType: "pu", Proc: 1}

	initial := databuf.New(32)
	_ = initial.Set(0, 32, 0xFFFF0000)
	if status := sim.RegisterWrite(ref, 0x10, initial); status != rc.EngineOK {
		t.Fatalf("RegisterWrite status = %#x", status)
	}

	update := databuf.New(32)
	_ = update.Set(0, 32, 0x0000AAAA)
	mask := databuf.New(32)
	_ = mask.Set(0, 32, 0x0000FFFF)
	if status := sim.RegisterWriteMasked(ref, 0x10, update, mask); status != rc.EngineOK {
		t.Fatalf("RegisterWriteMasked status = %#x", status)
	}

	out := databuf.New(32)
	if status := sim.RegisterRead(ref, 0x10, out); status != rc.EngineOK {
		t.Fatalf("RegisterRead status = %#x", status)
	}
	got, _ := out.Get(0, 32)
	if got != 0xFFFFAAAA {
		t.Errorf("merged register = %#x, want 0xFFFFAAAA", got)
	}
}

func TestSimForcedStatus(t *testing.T) {
	sim := NewSimTransport()
	sim.ForceStatus = rc.EngineParity

	buf := databuf.New(32)
	if status := sim.RegisterRead(Ref{}, 0, buf); status != rc.EngineParity {
		t.Errorf("forced status = %#x, want EngineParity", status)
	}
	if _, status := sim.ScanLength(Ref{}, "ring0"); status != rc.EngineParity {
		t.Errorf("forced scan-length status = %#x, want EngineParity", status)
	}
}

func TestSimScanEchoAndHook(t *testing.T) {
	sim := NewSimTransport()
	ref := Ref{ChipType: "pu"}

	in := databuf.New(16)
	_ = in.Set(0, 16, 0xBEEF)
	out := databuf.New(16)
	if status := sim.Scan(ref, "ring0", 0, in, out); status != rc.EngineOK {
		t.Fatalf("Scan status = %#x", status)
	}
	got, _ := out.Get(0, 16)
	if got != 0xBEEF {
		t.Errorf("default scan echo = %#x, want 0xBEEF", got)
	}

	sim.OnScan = func(_ Ref, _ string, _ int, _, out *databuf.Buffer) uint32 {
		_ = out.Set(0, 16, 0xCAFE)
		return rc.EngineOK
	}
	if status := sim.Scan(ref, "ring0", 0, in, out); status != rc.EngineOK {
		t.Fatalf("hooked Scan status = %#x", status)
	}
	got, _ = out.Get(0, 16)
	if got != 0xCAFE {
		t.Errorf("hooked scan = %#x, want 0xCAFE", got)
	}
}

func TestSimPinState(t *testing.T) {
	sim := NewSimTransport()
	ref := Ref{ChipType: "pu"}

	if level, status := sim.PinGet(ref, 4); status != rc.EngineOK || level {
		t.Fatalf("initial pin = %v status %#x, want low/OK", level, status)
	}
	if status := sim.PinSet(ref, 4, true); status != rc.EngineOK {
		t.Fatalf("PinSet status = %#x", status)
	}
	if level, _ := sim.PinGet(ref, 4); !level {
		t.Errorf("pin after set = low, want high")
	}
}
