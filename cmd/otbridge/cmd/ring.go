package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var getringCmd = &cobra.Command{
	Use:   "getring <position> <ring>",
	Short: "Extract a scan ring (length determined by hardware)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGetRing,
}

var putringCmd = &cobra.Command{
	Use:   "putring <position> <ring> <hexdata>",
	Short: "Shift data into a scan ring",
	Args:  cobra.ExactArgs(3),
	RunE:  runPutRing,
}

func init() {
	rootCmd.AddCommand(getringCmd)
	rootCmd.AddCommand(putringCmd)
}

func runGetRing(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	// The transport resizes the buffer to the ring's true length.
	buf := databuf.New(32)
	if err := checkRC("getring", pluginapi.GetRing(args[0], args[1], buf)); err != nil {
		return err
	}
	fmt.Printf("%s %s (%d bits) = %s\n", args[0], args[1], buf.BitLen(), buf.Hex())
	return nil
}

func runPutRing(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	buf, err := hexDataBuffer(args[2])
	if err != nil {
		return err
	}
	return checkRC("putring", pluginapi.PutRing(args[0], args[1], buf))
}
