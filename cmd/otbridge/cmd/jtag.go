package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var jtagscanCmd = &cobra.Command{
	Use:   "jtagscan <position> <tap> <hexdata>",
	Short: "Shift data through a JTAG chain and print the capture",
	Args:  cobra.ExactArgs(3),
	RunE:  runJtagScan,
}

func init() {
	rootCmd.AddCommand(jtagscanCmd)
}

func runJtagScan(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	buf, err := hexDataBuffer(args[2])
	if err != nil {
		return err
	}
	if err := checkRC("jtagscan", pluginapi.ScanJTAG(args[0], args[1], buf)); err != nil {
		return err
	}
	fmt.Printf("%s %s capture = %s\n", args[0], args[1], buf.Hex())
	return nil
}
