package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           `effectrt`,
		Short:         `Runtime for compiled effect programs`,
		Long:          `effectrt runs continuation-passing effect programs on a cooperative, single-threaded scheduler, advancing logical time with either a discrete tick loop or a real event loop.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCmd(), newProgramsCmd())
	return rootCmd
}
