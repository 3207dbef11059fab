package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagOutputDir string
	flagAnalysis  bool
)

var rootCmd = &cobra.Command{
	Use:   "folha",
	Short: "Pay-advantage consolidation tooling",
	Long: `Consolidates pay-advantage spreadsheet exports into payroll deployment
files, with analysis reports, file merging, tariff calculation and a
watch-folder monitor.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output", "o", ".", "directory for output artifacts")
	rootCmd.AddCommand(militarCmd, demaisCmd, juntarCmd, tarifaCmd, monitorCmd, aposentadosCmd)
}

func logLine(msg string) {
	fmt.Println(msg)
}
