package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domhelper/internal/script"
)

func opsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List script operations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, usage := range script.Ops() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", usage)
			}
		},
	}
}
