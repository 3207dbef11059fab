package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"folha/internal/retiree"
	"folha/internal/table"
)

var (
	flagBlocked       bool
	flagReferenceDate string
)

var aposentadosCmd = &cobra.Command{
	Use:   "aposentados FILE",
	Short: "Price the retired-teachers agreement and emit deployment files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.ReadXLSX(args[0])
		if err != nil {
			return err
		}
		inputs := retiree.FromTable(t)

		ref := time.Now()
		if flagReferenceDate != "" {
			ref, err = time.Parse("2006-01-02", flagReferenceDate)
			if err != nil {
				return fmt.Errorf("invalid reference date: %w", err)
			}
		}

		var retirees, pensioners []retiree.Entry
		if flagBlocked {
			retirees, pensioners, _ = retiree.ProcessBlocked(inputs, ref)
		} else {
			retirees, pensioners, _ = retiree.ProcessNew(inputs, ref)
		}

		retireesPath := filepath.Join(flagOutputDir, "lancamento_aposentados.xlsx")
		if err := table.WriteXLSX(retireesPath, table.Sheet{Name: "Retirees", Table: retiree.EntriesTable(retirees)}); err != nil {
			return err
		}
		logLine(fmt.Sprintf("retirees: %d entries -> %s", len(retirees), retireesPath))

		if len(pensioners) > 0 {
			pensionersPath := filepath.Join(flagOutputDir, "lancamento_pensionistas.xlsx")
			if err := table.WriteXLSX(pensionersPath, table.Sheet{Name: "Pensioners", Table: retiree.EntriesTable(pensioners)}); err != nil {
				return err
			}
			logLine(fmt.Sprintf("pensioners: %d entries -> %s", len(pensioners), pensionersPath))
		}
		return nil
	},
}

func init() {
	aposentadosCmd.Flags().BoolVar(&flagBlocked, "blocked", false, "use the blocked-fee agreement rules")
	aposentadosCmd.Flags().StringVar(&flagReferenceDate, "reference-date", "", "retro reference date (YYYY-MM-DD), default today")
}
