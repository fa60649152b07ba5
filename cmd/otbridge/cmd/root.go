package cmd

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/internal/logging"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/bridge"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

var (
	// Global flags
	verbose      bool
	topologyPath string
	probeName    string
)

var rootCmd = &cobra.Command{
	Use:   "otbridge",
	Short: "Hardware engine bridge and debug CLI",
	Long: `otbridge translates engine-agnostic hardware requests (SCOM registers,
scan rings, JTAG chains, FSI/I2C buses, GPIO pins) into transport operations
against processor debug hardware.

Examples:
  otbridge getscom pu:p00 800              # Read SCOM register 0x800
  otbridge putscom pu:p00 800 DEADBEEF11223344
  otbridge getring pu.core:c0 eq_func      # Extract a scan ring
  otbridge query targets all               # Enumerate the topology
  otbridge probes                           # List attached debug probes`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			return logging.EnableDevelopment()
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&topologyPath, "topology", "", "topology snapshot file (default $OTBRIDGE_TOPOLOGY or built-in)")
	rootCmd.PersistentFlags().StringVar(&probeName, "probe", "sim", "debug probe to use: sim or auto")
}

var (
	bridgeOnce sync.Once
	bridgeInst *bridge.Bridge
	bridgeErr  error
)

// sharedBridge assembles the bridge once per invocation and installs it
// behind the static call surface.
func sharedBridge() (*bridge.Bridge, error) {
	bridgeOnce.Do(func() {
		tr, err := selectTransport()
		if err != nil {
			bridgeErr = err
			return
		}
		bridgeInst, bridgeErr = pluginapi.NewBridge(topologyPath, tr)
		if bridgeErr == nil {
			pluginapi.Configure(bridgeInst)
		}
	})
	return bridgeInst, bridgeErr
}

func selectTransport() (transport.Transport, error) {
	switch probeName {
	case "sim", "":
		return transport.NewSimTransport(), nil
	case "auto":
		probes, err := transport.DiscoverProbes(rootCmd.Context())
		if err != nil {
			return nil, fmt.Errorf("probe discovery: %w", err)
		}
		// The simulator entry is always last; prefer real hardware.
		return transport.OpenProbe(probes[0])
	}
	return nil, fmt.Errorf("unknown probe %q (want sim or auto)", probeName)
}

// parseHex64 parses a hex argument with or without 0x prefix.
func parseHex64(s string) (uint64, error) {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q", s)
	}
	return v, nil
}

// checkRC converts a non-success return code into a command error.
func checkRC(what string, out rc.ReturnCode) error {
	if out.Failed() {
		return fmt.Errorf("%s: %s", what, out)
	}
	if out.Severity == rc.SeverityWarning {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", what, out)
	}
	return nil
}

// hexDataBuffer builds a buffer sized for the given hex string.
func hexDataBuffer(data string) (*databuf.Buffer, error) {
	if len(data) > 2 && (data[:2] == "0x" || data[:2] == "0X") {
		data = data[2:]
	}
	buf := databuf.New(len(data) * 4)
	if err := buf.SetHex(data); err != nil {
		return nil, err
	}
	return buf, nil
}
