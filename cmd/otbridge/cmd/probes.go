package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

var probesCmd = &cobra.Command{
	Use:   "probes",
	Short: "List attached hardware debug probes",
	Args:  cobra.NoArgs,
	RunE:  runProbes,
}

func init() {
	rootCmd.AddCommand(probesCmd)
}

func runProbes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	probes, err := transport.DiscoverProbes(ctx)
	if err != nil {
		return fmt.Errorf("probe discovery: %w", err)
	}
	for _, p := range probes {
		fmt.Println(p.Label())
	}
	return nil
}
