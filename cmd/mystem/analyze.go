package main

import (
	"os"
	"strings"

	"github.com/aretw0/mystem"
	"github.com/aretw0/mystem/internal/cli"
	"github.com/aretw0/mystem/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze text and print lemmas with their grammatical facts",
	Long: `Analyzes the arguments as one text. Without arguments every line of standard
input is analyzed separately; on a terminal this becomes an interactive prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := cli.NewLogger(cfg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		printer, err := cli.NewPrinter(format, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		rt, err := cli.NewRuntime(cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if len(args) > 0 {
			return cli.AnalyzeText(ctx, rt.Analyzer, strings.Join(args, " "), printer)
		}

		interactive := cli.IsInteractive(os.Stdin)
		if interactive {
			tui.PrintBanner(cmd.OutOrStdout(), mystem.Version)
		}
		err = cli.AnalyzeStream(ctx, rt.Analyzer, cmd.InOrStdin(), printer, interactive, logger)
		if sig := ctx.Signal(); sig != nil {
			logger.Debug("analysis interrupted", "signal", sig.String())
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", cli.FormatTable, "Output format: 'table', 'json' or 'plain'")
}
