package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/itemstore/pkg/core"
)

var (
	createName        string
	createDescription string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().Create(cmd.Context(), core.Item{Name: createName, Description: createDescription})
		if err != nil {
			return serverMessage(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createName, "name", "", "Item name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Item description")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("description")
}
