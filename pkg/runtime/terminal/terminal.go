package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/traxovo/fleet-ledger/pkg/runtime/terminal/commands"
	"github.com/traxovo/fleet-ledger/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet-ledger",
		Short: "Equipment billing spreadsheet reconciliation tool",
	}

	cmd.AddCommand(commands.NewProcessCmd(cli.reporter))
	cmd.AddCommand(commands.NewDiffCmd(cli.reporter))
	cmd.AddCommand(commands.NewInspectCmd(cli.output))

	return cmd
}
