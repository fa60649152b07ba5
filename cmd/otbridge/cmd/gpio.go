package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var gpioCmd = &cobra.Command{
	Use:   "gpio",
	Short: "Read or drive GPIO pins",
}

var gpioGetCmd = &cobra.Command{
	Use:   "get <position> <pin>",
	Short: "Sample a GPIO pin",
	Args:  cobra.ExactArgs(2),
	RunE:  runGpioGet,
}

var gpioSetCmd = &cobra.Command{
	Use:   "set <position> <pin> <0|1>",
	Short: "Drive a GPIO pin",
	Args:  cobra.ExactArgs(3),
	RunE:  runGpioSet,
}

func init() {
	gpioCmd.AddCommand(gpioGetCmd)
	gpioCmd.AddCommand(gpioSetCmd)
	rootCmd.AddCommand(gpioCmd)
}

func runGpioGet(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	pin, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid pin %q", args[1])
	}

	buf := databuf.New(1)
	if err := checkRC("gpio get", pluginapi.GetGpio(args[0], uint32(pin), buf)); err != nil {
		return err
	}
	level, _ := buf.TestBit(0)
	state := "low"
	if level {
		state = "high"
	}
	fmt.Printf("%s pin %d = %s\n", args[0], pin, state)
	return nil
}

func runGpioSet(cmd *cobra.Command, args []string) error {
	if _, err := sharedBridge(); err != nil {
		return err
	}
	pin, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid pin %q", args[1])
	}

	buf := databuf.New(1)
	switch args[2] {
	case "1", "high":
		if err := buf.SetBit(0); err != nil {
			return err
		}
	case "0", "low":
	default:
		return fmt.Errorf("invalid level %q (want 0 or 1)", args[2])
	}
	return checkRC("gpio set", pluginapi.PutGpio(args[0], uint32(pin), buf))
}
