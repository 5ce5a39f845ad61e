package commands

import (
	"github.com/spf13/cobra"

	"github.com/traxovo/fleet-ledger/pkg/runtime/terminal/export"
	svcexport "github.com/traxovo/fleet-ledger/pkg/services/export"
	"github.com/traxovo/fleet-ledger/pkg/services/recon"
	"github.com/traxovo/fleet-ledger/pkg/services/tabular"
)

type DiffCmd struct {
	oldPath     string
	newPath     string
	keyColumn   string
	valueColumn string
	tolerance   float64
	outputPath  string
	reporter    *export.Reporter
}

func NewDiffCmd(reporter *export.Reporter) *cobra.Command {
	dc := &DiffCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Reconcile two dataset versions by a shared key column",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.oldPath, "old", "", "Path to the original dataset")
	cmd.Flags().StringVar(&dc.newPath, "new", "", "Path to the new dataset")
	cmd.Flags().StringVar(&dc.keyColumn, "key", "", "Shared key column name")
	cmd.Flags().StringVar(&dc.valueColumn, "value", "", "Value column compared for changes")
	cmd.Flags().Float64Var(&dc.tolerance, "tolerance", recon.DefaultTolerance,
		"Numeric tolerance below which values are considered equal")
	cmd.Flags().StringVar(&dc.outputPath, "output", "", "Optional path for an Excel change report")

	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func (dc *DiffCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	oldDS, err := tabular.NewReader(dc.oldPath).First(ctx)
	if err != nil {
		return err
	}
	newDS, err := tabular.NewReader(dc.newPath).First(ctx)
	if err != nil {
		return err
	}

	changes, err := recon.Diff(oldDS, newDS, recon.DiffOptions{
		KeyColumn:   dc.keyColumn,
		ValueColumn: dc.valueColumn,
		Tolerance:   dc.tolerance,
	})
	if err != nil {
		return err
	}

	if dc.outputPath != "" {
		if err := svcexport.WriteChangeWorkbook(dc.outputPath, changes); err != nil {
			return err
		}
	}

	return dc.reporter.HandleChanges(changes)
}
