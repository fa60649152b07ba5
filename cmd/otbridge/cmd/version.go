package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/pluginapi"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build identity",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(pluginapi.Ident())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
