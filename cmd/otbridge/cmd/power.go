package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var powerCmd = &cobra.Command{
	Use:   "power <on|off> <position>",
	Short: "Run a power control action on a target",
	Args:  cobra.ExactArgs(2),
	RunE:  runPower,
}

var mpiplCmd = &cobra.Command{
	Use:   "mpipl <position>",
	Short: "Trigger a memory-preserving IPL",
	Args:  cobra.ExactArgs(1),
	RunE:  runMpipl,
}

func init() {
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(mpiplCmd)
}

func runPower(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	var action string
	switch args[0] {
	case "on":
		action = "power-on"
	case "off":
		action = "power-off"
	default:
		return fmt.Errorf("invalid power action %q (want on or off)", args[0])
	}
	return checkRC("power "+args[0], pluginapi.PowerControl(args[1], action))
}

func runMpipl(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	return checkRC("mpipl", pluginapi.TriggerMpipl(args[0]))
}
