package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var getsensorCmd = &cobra.Command{
	Use:   "getsensor <position> <id>",
	Short: "Read a hardware sensor",
	Args:  cobra.ExactArgs(2),
	RunE:  runGetSensor,
}

func init() {
	rootCmd.AddCommand(getsensorCmd)
}

func runGetSensor(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	id, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid sensor id %q", args[1])
	}

	buf := databuf.New(32)
	if err := checkRC("getsensor", pluginapi.GetSensor(args[0], uint32(id), buf)); err != nil {
		return err
	}
	value, _ := buf.Get(0, 32)
	fmt.Printf("%s sensor %d = %d (0x%08X)\n", args[0], id, value, value)
	return nil
}
