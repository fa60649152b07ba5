//go:build !standalone

package pluginapi

import (
	"os"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/bridge"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/target"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

func newTestBridge(t *testing.T, caps engine.Capabilities) (*bridge.Bridge, *transport.SimTransport) {
	t.Helper()
	sim := transport.NewSimTransport()
	b := bridge.New(
		engine.NewRegistry(caps),
		target.NewResolver(target.DefaultTopology()),
		sim,
		rc.NewTranslator(caps.StripDebugCodes),
	)
	return b, sim
}

func TestStaticAndEntryPointSurfacesMatch(t *testing.T) {
	b, sim := newTestBridge(t, engine.Capabilities{AllEngines: true})
	sim.OnRegisterRead = func(_ transport.Ref, _ uint64, buf *databuf.Buffer) uint32 {
		_ = buf.Set(0, 32, 0xDEADBEEF)
		return rc.EngineOK
	}

	Configure(b)
	table := EntryPoints(b)

	staticBuf := databuf.New(32)
	staticRC := GetScom("pu:p00", 0x800, staticBuf)

	entry, found := table.Find("scom.read")
	if !found {
		t.Fatalf("entry scom.read missing; have %d entries", len(table.Entries))
	}
	pluginBuf := databuf.New(32)
	pluginRC := entry.Call("pu:p00", pluginBuf, engine.Options{Address: 0x800})

	if staticRC != pluginRC {
		t.Errorf("return codes differ: static %v, plugin %v", staticRC, pluginRC)
	}
	sv, _ := staticBuf.Get(0, 32)
	pv, _ := pluginBuf.Get(0, 32)
	if sv != pv || sv != 0xDEADBEEF {
		t.Errorf("buffers differ: static %#x, plugin %#x, want 0xDEADBEEF both", sv, pv)
	}
}

func TestEntryPointsReflectCapabilitySet(t *testing.T) {
	b, _ := newTestBridge(t, engine.Capabilities{Engines: []string{engine.NameSCOM}})
	table := EntryPoints(b)

	if _, found := table.Find("scom.read"); !found {
		t.Errorf("scom.read missing from reduced table")
	}
	if _, found := table.Find("i2c.read"); found {
		t.Errorf("i2c.read present despite being outside the capability set")
	}
}

func TestScanJTAGShiftsCallerData(t *testing.T) {
	b, _ := newTestBridge(t, engine.Capabilities{AllEngines: true})
	Configure(b)

	buf := databuf.New(32)
	_ = buf.Set(0, 32, 0xDEADBEEF)
	out := ScanJTAG("pu:p00", "tap0", buf)
	if !out.IsOK() {
		t.Fatalf("ScanJTAG = %v, want success", out)
	}
	// The default simulator chain echoes whatever was shifted in, so the
	// capture equals the input only if the caller's bits reached the chain.
	if got, _ := buf.Get(0, 32); got != 0xDEADBEEF {
		t.Errorf("capture = %#x, want the echoed 0xDEADBEEF", got)
	}
}

func TestDisabledEngineThroughStaticSurface(t *testing.T) {
	b, _ := newTestBridge(t, engine.Capabilities{Engines: []string{engine.NameSCOM}})
	Configure(b)

	buf := databuf.New(32)
	out := GetI2C("pu:p00", 0, 0x50, 0, buf)
	if out.Value != rc.EngineDisabledInBuild {
		t.Errorf("disabled i2c = %v, want EngineDisabledInBuild", out)
	}
}

func TestIdentMentionsVariant(t *testing.T) {
	if !strings.Contains(Ident(), "variant") {
		t.Errorf("Ident() = %q, want variant information", Ident())
	}
}

func TestNewBridgeLoadsTopologyFromPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/topo.sexp"
	content := `(topology (chip (type pu) (pos 7) (state present)))`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write topology: %v", err)
	}

	b, err := NewBridge(path, transport.NewSimTransport())
	if err != nil {
		t.Fatalf("NewBridge: %v", err)
	}

	p, err := target.ParsePosition("pu:p07")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	if _, err := b.Resolver().Resolve(p); err != nil {
		t.Errorf("Resolve(pu:p07) against loaded topology: %v", err)
	}
}
