package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/joeycumines/go-effectrt/internal/programs"
	"github.com/spf13/cobra"
)

func newProgramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `programs`,
		Short: `List the bundled programs`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range programs.All() {
				fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Description)
			}
			return w.Flush()
		},
	}
}
