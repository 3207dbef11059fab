package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folha/internal/merge"
)

var juntarCmd = &cobra.Command{
	Use:   "juntar [files...]",
	Short: "Merge spreadsheets into one workbook with provenance",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := merge.New(nil).Merge(args, flagOutputDir)
		if err != nil {
			return err
		}
		logLine(fmt.Sprintf("merged %d files (%d rows) into %s", len(res.Files), res.TotalRows, res.OutputPath))
		logLine("log: " + res.LogPath)
		return nil
	},
}
