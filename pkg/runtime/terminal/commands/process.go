package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/traxovo/fleet-ledger/pkg/runtime/terminal/export"
	"github.com/traxovo/fleet-ledger/pkg/services/config"
	svcexport "github.com/traxovo/fleet-ledger/pkg/services/export"
	"github.com/traxovo/fleet-ledger/pkg/services/recon"
)

type ProcessCmd struct {
	inputDir   string
	exportDir  string
	configPath string
	reporter   *export.Reporter
}

func NewProcessCmd(reporter *export.Reporter) *cobra.Command {
	pc := &ProcessCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Ingest billing spreadsheets and write normalized exports",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.inputDir, "input", "", "Directory containing input spreadsheets")
	cmd.Flags().StringVar(&pc.exportDir, "output", "", "Directory for Excel/CSV exports")
	cmd.Flags().StringVar(&pc.configPath, "config", "", "Path to a YAML configuration profile")

	return cmd
}

func (pc *ProcessCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(pc.configPath)
	if err != nil {
		return err
	}
	if pc.inputDir != "" {
		cfg.InputDir = pc.inputDir
	}
	if pc.exportDir != "" {
		cfg.ExportDir = pc.exportDir
	}

	processor, err := recon.NewProcessor(cfg)
	if err != nil {
		return err
	}

	result, err := processor.Run(cmd.Context(), cfg.InputDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	workbook := filepath.Join(cfg.ExportDir, "reconciled.xlsx")
	if err := svcexport.WriteWorkbook(workbook, result.Records); err != nil {
		return err
	}
	if err := svcexport.WriteDivisionCSVs(cfg.ExportDir, result.Records, result.DateResolved); err != nil {
		return err
	}

	return pc.reporter.Handle(result.Report)
}
