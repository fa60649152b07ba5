package pluginapi

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBridge/internal/buildcfg"
)

// Build identity, stamped via -ldflags at release time. Informational only;
// excluded from the correctness contract.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// Ident returns the plugin identity/build string reported by the
// introspection entry point and the version command.
func Ident() string {
	return fmt.Sprintf("otbridge %s (%s, %s variant)", Version, BuildDate, buildcfg.VariantName())
}
