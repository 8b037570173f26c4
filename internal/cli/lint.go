package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relictool/relic/internal/app"
	"github.com/relictool/relic/internal/report"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check every project file for license and copyright information",
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().Bool("show-skipped", false, "list paths left out of the scan")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cfg.ShowSkipped, _ = cmd.Flags().GetBool("show-skipped")

	application := app.New(cfg)

	ctx, cancel := commandContext(cfg.Timeout)
	defer cancel()

	result, err := application.Scan(ctx)
	if err != nil {
		return err
	}

	printer := report.NewPrinter().
		WithOutput(application.Output).
		WithColors(cfg.UseColors).
		WithJSON(cfg.JSONOutput)

	if err := printer.PrintRecords(result.Records); err != nil {
		return err
	}

	if !cfg.JSONOutput {
		result.Summary.Display(application.Output)
		if cfg.ShowSkipped {
			report.DisplaySkipped(application.Output, result.Skipped)
		}
	}

	if n := result.Summary.Incomplete; n > 0 {
		return fmt.Errorf("%d files lack complete reuse information", n)
	}

	return nil
}
