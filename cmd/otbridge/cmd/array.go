package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var getarrayCmd = &cobra.Command{
	Use:   "getarray <position> <chain> <bitoffset> <bitlength>",
	Short: "Read an array window from a scan chain",
	Args:  cobra.ExactArgs(4),
	RunE:  runGetArray,
}

var putarrayCmd = &cobra.Command{
	Use:   "putarray <position> <chain> <bitoffset> <hexdata>",
	Short: "Write an array window into a scan chain",
	Args:  cobra.ExactArgs(4),
	RunE:  runPutArray,
}

func init() {
	rootCmd.AddCommand(getarrayCmd)
	rootCmd.AddCommand(putarrayCmd)
}

func runGetArray(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	offset, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid bit offset %q", args[2])
	}
	length, err := strconv.Atoi(args[3])
	if err != nil || length <= 0 {
		return fmt.Errorf("invalid bit length %q", args[3])
	}

	buf := databuf.New(length)
	if err := checkRC("getarray", pluginapi.GetArray(args[0], args[1], offset, buf)); err != nil {
		return err
	}
	fmt.Printf("%s %s[%d:%d] = %s\n", args[0], args[1], offset, offset+length-1, buf.Hex())
	return nil
}

func runPutArray(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	offset, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid bit offset %q", args[2])
	}
	buf, err := hexDataBuffer(args[3])
	if err != nil {
		return err
	}
	return checkRC("putarray", pluginapi.PutArray(args[0], args[1], offset, buf))
}
