package cmd

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the local build version",
	Run: func(cmd *cobra.Command, args []string) {
		_ = infoLocally(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
