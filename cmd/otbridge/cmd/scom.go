package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var (
	scomMask   string
	scomBitOff int
	scomBitLen int
)

var getscomCmd = &cobra.Command{
	Use:   "getscom <position> <address>",
	Short: "Read a SCOM register",
	Args:  cobra.ExactArgs(2),
	RunE:  runGetScom,
}

var putscomCmd = &cobra.Command{
	Use:   "putscom <position> <address> <data>",
	Short: "Write a SCOM register, optionally under a mask",
	Args:  cobra.ExactArgs(3),
	RunE:  runPutScom,
}

func init() {
	rootCmd.AddCommand(getscomCmd)
	rootCmd.AddCommand(putscomCmd)

	getscomCmd.Flags().IntVar(&scomBitOff, "boff", 0, "bit offset of sub-field to display")
	getscomCmd.Flags().IntVar(&scomBitLen, "blen", 0, "bit length of sub-field to display (0 = whole register)")
	putscomCmd.Flags().StringVar(&scomMask, "mask", "", "update only bits set in this 64-bit hex mask")
}

func runGetScom(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	addr, err := parseHex64(args[1])
	if err != nil {
		return err
	}

	buf := databuf.New(64)
	if err := checkRC("getscom", pluginapi.GetScom(args[0], addr, buf)); err != nil {
		return err
	}

	if scomBitLen > 0 {
		field, err := buf.Get(scomBitOff, scomBitLen)
		if err != nil {
			return err
		}
		fmt.Printf("%s 0x%016X [%d:%d] = 0x%X\n", args[0], addr, scomBitOff, scomBitOff+scomBitLen-1, field)
		return nil
	}
	fmt.Printf("%s 0x%016X = %s\n", args[0], addr, buf.Hex())
	return nil
}

func runPutScom(cmd *cobra.Command, args []string) error {
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

	buf := databuf.New(64)
	if err := buf.Set(0, 64, data); err != nil {
		return err
	}

	if scomMask != "" {
		maskVal, err := parseHex64(scomMask)
		if err != nil {
			return err
		}
		mask := databuf.New(64)
		if err := mask.Set(0, 64, maskVal); err != nil {
			return err
		}
		return checkRC("putscom", pluginapi.PutScomUnderMask(args[0], addr, buf, mask))
	}
	return checkRC("putscom", pluginapi.PutScom(args[0], addr, buf))
}
