package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edirooss/streamforge/internal/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "streamforge %s (commit %s, built %s)\n", config.Version, config.GitCommit, config.BuildDate)
		},
	}
}
