// Command order-dashboard consolidates per-person monthly order sheets into a
// single table, prints its summaries and exports the CSV and charts. The serve
// subcommand runs the same pipeline behind an interactive web dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "order-dashboard",
		Short: "Consolidate monthly order sheets into reports and charts",
		Long: `order-dashboard reads a workbook with one sheet per person, each holding
monthly order amounts per region, and produces the consolidated table, totals
by person, region and month, a CSV export and PNG charts.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newReportCmd(), newServeCmd(), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
