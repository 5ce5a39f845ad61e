package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/traxovo/fleet-ledger/pkg/services/config"
	"github.com/traxovo/fleet-ledger/pkg/services/roles"
	"github.com/traxovo/fleet-ledger/pkg/services/tabular"
)

type InspectCmd struct {
	configPath string
	output     io.Writer
}

// NewInspectCmd prints which column each role resolved to, per sheet,
// so header drift in new source files can be audited before a run.
func NewInspectCmd(output io.Writer) *cobra.Command {
	ic := &InspectCmd{output: output}
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show resolved column roles for a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.configPath, "config", "", "Path to a YAML configuration profile")

	return cmd
}

func (ic *InspectCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(ic.configPath)
	if err != nil {
		return err
	}
	patterns := cfg.RolePatterns()

	datasets, err := tabular.NewReader(args[0]).Datasets(cmd.Context())
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		return fmt.Errorf("no usable sheet in %s", args[0])
	}

	for _, ds := range datasets {
		rm := roles.Resolve(ds.Headers, patterns)
		name := ds.SheetName
		if name == "" {
			name = ds.SourceFile
		}
		fmt.Fprintf(ic.output, "%s (%d rows)\n", name, len(ds.Rows))
		for _, p := range patterns {
			if col, ok := rm.Column(p.Role); ok {
				fmt.Fprintf(ic.output, "  %-14s -> %s\n", p.Role, col)
			}
		}
		if missing := rm.MissingRequired(); len(missing) > 0 {
			fmt.Fprintf(ic.output, "  missing required: %v\n", missing)
		}
		fmt.Fprintln(ic.output)
	}

	return nil
}
