package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var geti2cCmd = &cobra.Command{
	Use:   "geti2c <position> <bus> <device> <offset> <bytes>",
	Short: "Read bytes from an I2C device",
	Args:  cobra.ExactArgs(5),
	RunE:  runGetI2C,
}

var puti2cCmd = &cobra.Command{
	Use:   "puti2c <position> <bus> <device> <offset> <hexdata>",
	Short: "Write bytes to an I2C device",
	Args:  cobra.ExactArgs(5),
	RunE:  runPutI2C,
}

func init() {
	rootCmd.AddCommand(geti2cCmd)
	rootCmd.AddCommand(puti2cCmd)
}

func i2cAddressArgs(args []string) (bus, device uint32, offset uint64, err error) {
	b, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid bus %q", args[1])
	}
	d, err := parseHex64(args[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid device %q", args[2])
	}
	o, err := parseHex64(args[3])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid offset %q", args[3])
	}
	return uint32(b), uint32(d), o, nil
}

func runGetI2C(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	bus, device, offset, err := i2cAddressArgs(args)
	if err != nil {
		return err
	}
	nbytes, err := strconv.Atoi(args[4])
	if err != nil || nbytes <= 0 {
		return fmt.Errorf("invalid byte count %q", args[4])
	}

	buf := databuf.New(nbytes * 8)
	if err := checkRC("geti2c", pluginapi.GetI2C(args[0], bus, device, offset, buf)); err != nil {
		return err
	}
	fmt.Printf("%s bus %d dev 0x%02X @0x%X = %s\n", args[0], bus, device, offset, buf.Hex())
	return nil
}

func runPutI2C(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	bus, device, offset, err := i2cAddressArgs(args)
	if err != nil {
		return err
	}
	buf, err := hexDataBuffer(args[4])
	if err != nil {
		return err
	}
	return checkRC("puti2c", pluginapi.PutI2C(args[0], bus, device, offset, buf))
}
