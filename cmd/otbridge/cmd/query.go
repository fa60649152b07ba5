package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/target"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Enumerate engines and topology",
}

var queryEnginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List known engines with enablement and operations",
	Args:  cobra.NoArgs,
	RunE:  runQueryEngines,
}

var queryTargetsCmd = &cobra.Command{
	Use:   "targets <position>",
	Short: "Expand a (possibly wildcarded) position against the topology",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryTargets,
}

func init() {
	queryCmd.AddCommand(queryEnginesCmd)
	queryCmd.AddCommand(queryTargetsCmd)
	rootCmd.AddCommand(queryCmd)
}

func runQueryEngines(cmd *cobra.Command, args []string) error {
	b, err := sharedBridge()
	if err != nil {
		return err
	}
	for _, name := range b.Registry().Names() {
		desc, err := b.Registry().Describe(name)
		if err != nil {
			return err
		}
		state := "enabled"
		if !desc.Enabled {
			state = "disabled in this build"
		}
		var ops []string
		for _, op := range desc.Ops.Ops() {
			ops = append(ops, op.String())
		}
		fmt.Printf("%-8s %-22s addr %2d bits  ops: %v\n", name, state, desc.AddrWidth, ops)
	}
	return nil
}

func runQueryTargets(cmd *cobra.Command, args []string) error {
	b, err := sharedBridge()
	if err != nil {
		return err
	}
	p, err := target.ParsePosition(args[0])
	if err != nil {
		return err
	}
	positions, err := b.Resolver().Expand(p)
	if err != nil {
		return err
	}
	for _, pos := range positions {
		state, err := b.Resolver().State(pos)
		if err != nil {
			return err
		}
		fmt.Printf("%-32s %s\n", pos, state)
	}
	return nil
}
