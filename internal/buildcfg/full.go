//go:build !standalone

package buildcfg

import "github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"

const variantName = "plugin"

// The plugin variant carries every engine and the full diagnostic table.
var current = engine.Capabilities{
	AllEngines:      true,
	StripDebugCodes: false,
}
