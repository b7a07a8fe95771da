package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command of the authd CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "authd",
		Short:         "Email and password login service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedUserCmd())

	return cmd
}
