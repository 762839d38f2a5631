package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List preset sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range a.presets.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d × %d\n", p.Label, p.Width, p.Height)
			}

			return nil
		},
	}
}
