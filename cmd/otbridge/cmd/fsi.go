package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var getcfamCmd = &cobra.Command{
	Use:   "getcfam <position> <address>",
	Short: "Read a 32-bit FSI CFAM register",
	Args:  cobra.ExactArgs(2),
	RunE:  runGetCfam,
}

var putcfamCmd = &cobra.Command{
	Use:   "putcfam <position> <address> <data>",
	Short: "Write a 32-bit FSI CFAM register",
	Args:  cobra.ExactArgs(3),
	RunE:  runPutCfam,
}

func init() {
	rootCmd.AddCommand(getcfamCmd)
	rootCmd.AddCommand(putcfamCmd)
}

func runGetCfam(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	addr, err := parseHex64(args[1])
	if err != nil {
		return err
	}
	buf := databuf.New(32)
	if err := checkRC("getcfam", pluginapi.GetCfam(args[0], addr, buf)); err != nil {
		return err
	}
	fmt.Printf("%s 0x%08X = %s\n", args[0], addr, buf.Hex())
	return nil
}

func runPutCfam(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	addr, err := parseHex64(args[1])
	if err != nil {
		return err
	}
	data, err := parseHex64(args[2])
	if err != nil {
		return err
	}
	buf := databuf.New(32)
	if err := buf.Set(0, 32, data); err != nil {
		return err
	}
	return checkRC("putcfam", pluginapi.PutCfam(args[0], addr, buf))
}
