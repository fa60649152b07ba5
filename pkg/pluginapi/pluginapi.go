// Package pluginapi exposes the command bridge behind its two ABI surfaces:
// the statically linked call surface used by the standalone executable, and
// the discoverable entry-point table used when built as a loadable plugin.
// Both are thin shims over the same Bridge, so any operation supported by
// both produces bit-identical results.
package pluginapi

import (
	"fmt"
	"os"
	"sync"

	"github.com/OpenTraceLab/OpenTraceBridge/internal/buildcfg"
	"github.com/OpenTraceLab/OpenTraceBridge/internal/logging"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/bridge"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/target"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

// TopologyEnv names the environment variable consulted for a topology
// snapshot when no explicit path is given.
const TopologyEnv = "OTBRIDGE_TOPOLOGY"

// NewBridge assembles a bridge for this build variant: the capability set
// comes from compile-time configuration, the topology from the given path,
// the environment, or the compiled-in default.
func NewBridge(topologyPath string, tr transport.Transport) (*bridge.Bridge, error) {
	if topologyPath == "" {
		topologyPath = os.Getenv(TopologyEnv)
	}
	topo := target.DefaultTopology()
	if topologyPath != "" {
		loaded, err := target.LoadTopologyFile(topologyPath)
		if err != nil {
			return nil, fmt.Errorf("pluginapi: %w", err)
		}
		topo = loaded
	}

	caps := buildcfg.Current()
	return bridge.New(
		engine.NewRegistry(caps),
		target.NewResolver(topo),
		tr,
		rc.NewTranslator(caps.StripDebugCodes),
		bridge.WithLogger(logging.Logger()),
	), nil
}

var (
	mu     sync.RWMutex
	shared *bridge.Bridge
)

// Configure installs the process-wide bridge behind the static call surface.
func Configure(b *bridge.Bridge) {
	mu.Lock()
	defer mu.Unlock()
	shared = b
}

// Shared returns the configured bridge, or an error code path via call().
func Shared() *bridge.Bridge {
	mu.RLock()
	defer mu.RUnlock()
	return shared
}

// defaultTransport picks the transport used when the loading front end does
// not supply one: the simulator, so the plugin loads without hardware.
func defaultTransport() transport.Transport {
	return transport.NewSimTransport()
}

func call(pos string, engineName string, op engine.Op, buf *databuf.Buffer, opts engine.Options) rc.ReturnCode {
	b := Shared()
	if b == nil {
		return rc.ClientError(rc.EngineFailure)
	}
	p, err := target.ParsePosition(pos)
	if err != nil {
		return rc.ClientError(rc.NoSuchTarget)
	}
	return b.Execute(p, engineName, op, buf, opts)
}
