//go:build standalone

package buildcfg

import "github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"

const variantName = "standalone"

// The standalone executable keeps only the engines lab debug actually needs
// and collapses advisory return codes to success.
var current = engine.Capabilities{
	Engines: []string{
		engine.NameSCOM,
		engine.NameRing,
		engine.NameJTAG,
		engine.NameFSI,
	},
	StripDebugCodes: true,
}
