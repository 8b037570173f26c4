package cli

import (
	"github.com/spf13/cobra"

	"github.com/relictool/relic/internal/app"
	"github.com/relictool/relic/internal/report"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Show the resolved reuse information for specific paths",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	application := app.New(cfg)

	ctx, cancel := commandContext(cfg.Timeout)
	defer cancel()

	records, err := application.ResolvePaths(ctx, args)
	if err != nil {
		return err
	}

	printer := report.NewPrinter().
		WithOutput(application.Output).
		WithColors(cfg.UseColors).
		WithJSON(cfg.JSONOutput)

	return printer.PrintRecords(records)
}
