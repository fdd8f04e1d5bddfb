package main

import (
	"fmt"

	"github.com/aretw0/mystem"
	"github.com/aretw0/mystem/internal/cli"
	httpAdapter "github.com/aretw0/mystem/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts one analyzer session and exposes it as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		logger, err := cli.NewLogger(cfg)
		if err != nil {
			return err
		}

		rt, err := cli.NewRuntime(cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(rt.Registry),
			httpAdapter.WithVersion(mystem.Version),
		}
		if len(cfg.Server.AllowedOrigins) > 0 {
			opts = append(opts, httpAdapter.WithAllowedOrigins(cfg.Server.AllowedOrigins...))
		}
		handler := httpAdapter.NewHandler(rt.Analyzer, opts...)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		logger.Info("Starting mystem server", "port", cfg.Server.Port, "executable", cfg.Executable, "mode", cfg.Mode)
		return cli.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Server.Port), handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
