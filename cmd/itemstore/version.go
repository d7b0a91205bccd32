package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/itemstore"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of itemstore",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "itemstore %s\n", itemstore.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", itemstore.Commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", itemstore.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
