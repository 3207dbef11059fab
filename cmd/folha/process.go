package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"folha/internal/domain/advantage"
	"folha/internal/processor"
)

var (
	flagHourLimits []int64
	flagGMRLimits  []int64
	flagMagisterio []string
	flagNoAnalysis bool
)

var militarCmd = &cobra.Command{
	Use:   "militar [files...]",
	Short: "Run the military-agreement processor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := buildSources(args, advantage.DefaultGMRHourLimit)
		if err != nil {
			return err
		}
		for _, path := range flagMagisterio {
			sources = append(sources, advantage.Source{
				Path:         path,
				FriendlyName: filepath.Base(path),
				Kind:         advantage.KindMagisterio,
			})
		}
		res := processor.RunMilitary(sources, processor.Options{
			OutputDir: flagOutputDir,
			Analysis:  !flagNoAnalysis,
			Log:       logLine,
		})
		return report(res)
	},
}

var demaisCmd = &cobra.Command{
	Use:   "demais [files...]",
	Short: "Run the processor for the remaining categories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := buildSources(args, 0)
		if err != nil {
			return err
		}
		res := processor.RunStandard(sources, processor.Options{
			OutputDir: flagOutputDir,
			Analysis:  !flagNoAnalysis,
			Log:       logLine,
		})
		return report(res)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{militarCmd, demaisCmd} {
		cmd.Flags().Int64SliceVar(&flagHourLimits, "hour-limit", nil,
			"hour ceiling per file, in argument order; one value applies to all")
		cmd.Flags().BoolVar(&flagNoAnalysis, "no-analysis", false, "skip the analysis workbook")
	}
	militarCmd.Flags().Int64SliceVar(&flagGMRLimits, "gmr-limit", nil,
		"GMR hour ceiling per file, in argument order; one value applies to all")
	militarCmd.Flags().StringSliceVar(&flagMagisterio, "magisterio", nil, "magisterio lookup file(s)")
}

// buildSources pairs each file with its positional limit flags.
func buildSources(paths []string, defaultGMR int64) ([]advantage.Source, error) {
	sources := make([]advantage.Source, 0, len(paths))
	for i, path := range paths {
		hourLimit, err := limitAt(flagHourLimits, i, advantage.DefaultHourLimit)
		if err != nil {
			return nil, fmt.Errorf("hour-limit: %w", err)
		}
		gmrLimit, err := limitAt(flagGMRLimits, i, defaultGMR)
		if err != nil {
			return nil, fmt.Errorf("gmr-limit: %w", err)
		}
		sources = append(sources, advantage.Source{
			Path:         path,
			FriendlyName: filepath.Base(path),
			Kind:         advantage.KindStandard,
			HourLimit:    hourLimit,
			GMRHourLimit: gmrLimit,
		})
	}
	return sources, nil
}

func limitAt(limits []int64, i int, fallback int64) (int64, error) {
	switch {
	case len(limits) == 0:
		return fallback, nil
	case len(limits) == 1:
		return limits[0], nil
	case i < len(limits):
		return limits[i], nil
	default:
		return 0, fmt.Errorf("%d values for %d files", len(limits), i+1)
	}
}

func report(res processor.Result) error {
	logLine(res.Message)
	for key, path := range res.OutputPaths {
		logLine(fmt.Sprintf("  %s: %s", key, path))
	}
	if !res.OK() {
		return fmt.Errorf("processing failed: %s", res.Message)
	}
	return nil
}
