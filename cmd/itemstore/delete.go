package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteName string

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every item with the given name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().Delete(cmd.Context(), deleteName)
		if err != nil {
			return serverMessage(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVar(&deleteName, "name", "", "Name of the items to delete")
	_ = deleteCmd.MarkFlagRequired("name")
}
