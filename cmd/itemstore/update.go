package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/itemstore/pkg/core"
)

var (
	updateName        string
	updateDescription string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Set the description of every item with the given name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().Update(cmd.Context(), core.Item{Name: updateName, Description: updateDescription})
		if err != nil {
			return serverMessage(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateName, "name", "", "Name of the items to update")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	_ = updateCmd.MarkFlagRequired("name")
	_ = updateCmd.MarkFlagRequired("description")
}
