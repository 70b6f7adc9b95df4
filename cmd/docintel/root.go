package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docintel.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docintel",
		Short: "Persona-driven section ranking for PDF documents",
		Long: `docintel reads a batch of PDFs, splits every page into candidate sections
and ranks them by relevance to a persona and the job they are trying to do.

The result is printed as JSON: ranked sections, short refined excerpts and
batch statistics.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewProfilesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}
