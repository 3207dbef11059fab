package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folha/internal/tariff"
)

var (
	flagRatesFile  string
	flagImportFile string
)

var tarifaCmd = &cobra.Command{
	Use:   "tarifa CLF HOURS [CODE]",
	Short: "Calculate cost-allowance values from the rate table",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rates, err := tariff.Load(flagRatesFile, nil)
		if err != nil {
			return err
		}

		if flagImportFile != "" {
			res, err := rates.ProcessFile(flagImportFile)
			if err != nil {
				return err
			}
			logLine(fmt.Sprintf("priced %d rows, %d errors", len(res.Rows), len(res.Errors)))
			for _, msg := range res.Errors {
				logLine("  " + msg)
			}
			return nil
		}

		code := ""
		if len(args) == 3 {
			code = args[2]
		}
		calc, err := rates.Calculate(args[0], args[1], code)
		if err != nil {
			return err
		}
		logLine(fmt.Sprintf("normal: %d h x %s", calc.NormalHours, calc.NormalRate.StringFixed(2)))
		logLine(fmt.Sprintf("majorated: %d h x %s", calc.MajoratedHours, calc.MajoratedRate.StringFixed(2)))
		logLine(fmt.Sprintf("total: %s", calc.Total.StringFixed(2)))
		return nil
	},
}

func init() {
	tarifaCmd.Flags().StringVar(&flagRatesFile, "rates", "dados_ajuda_de_custo.xlsx", "rate table spreadsheet")
	tarifaCmd.Flags().StringVar(&flagImportFile, "import", "", "batch import spreadsheet; CLF/HOURS arguments are ignored")
}
