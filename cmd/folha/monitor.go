package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"folha/internal/monitor"
)

var (
	flagMonitorSource string
	flagMonitorDest   string
	flagSaveCSV       string
	flagSaveXLSX      string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch a folder, accumulating and archiving new exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagMonitorSource == "" || flagMonitorDest == "" {
			return fmt.Errorf("--source and --dest are required")
		}

		acc := monitor.NewAccumulator()
		m := monitor.New(monitor.Config{
			SourceDir:      flagMonitorSource,
			DestDir:        flagMonitorDest,
			StabilityPolls: 10,
			StabilityDelay: 500 * time.Millisecond,
			OnProcessed: func(path string) {
				logLine("processed: " + filepath.Base(path))
			},
		}, acc, nil)

		if !m.Start() {
			return fmt.Errorf("monitor failed to start")
		}
		logLine(fmt.Sprintf("watching %s (ctrl+c to stop)", flagMonitorSource))

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		m.Stop()

		if acc.Empty() {
			logLine("no rows accumulated")
			return nil
		}
		if flagSaveCSV != "" {
			if err := acc.SaveCSV(flagSaveCSV); err != nil {
				return err
			}
			logLine("saved " + flagSaveCSV)
		}
		if flagSaveXLSX != "" {
			if err := acc.SaveXLSX(flagSaveXLSX); err != nil {
				return err
			}
			logLine("saved " + flagSaveXLSX)
		}
		logLine(fmt.Sprintf("accumulated %d rows", acc.Len()))
		return nil
	},
}

func init() {
	monitorCmd.Flags().StringVar(&flagMonitorSource, "source", "", "folder to watch")
	monitorCmd.Flags().StringVar(&flagMonitorDest, "dest", "", "folder that receives processed files")
	monitorCmd.Flags().StringVar(&flagSaveCSV, "save-csv", "", "write accumulated rows as CSV on exit")
	monitorCmd.Flags().StringVar(&flagSaveXLSX, "save-xlsx", "", "write accumulated rows as a workbook on exit")
}
