// Package buildcfg selects the compile-time capability set of this build
// variant. The default build is the full plugin surface; the standalone tag
// trims the engine set and strips advisory diagnostics to shrink the binary.
// Variant differences live only here, never as run-time branches in handler
// code.
package buildcfg

import "github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"

// Current returns this build's capability set.
func Current() engine.Capabilities { return current }

// VariantName names the build variant for the version surface.
func VariantName() string { return variantName }
