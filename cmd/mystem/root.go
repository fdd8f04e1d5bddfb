package main

import (
	"fmt"
	"os"

	"github.com/aretw0/mystem/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mystem",
	Short: "mystem runs the Yandex mystem morphological analyzer as a managed worker",
	Long: `mystem keeps one long-lived mystem process per session, feeds it text line by line
and decodes its grammatical tags into structured facts.

Use "analyze" on the command line, "serve" for an HTTP API or "mcp" for AI agents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().String("executable", "", "Path to the mystem binary")
	rootCmd.PersistentFlags().String("mode", "", "Worker mode: 'weighted' or 'disambiguate'")
	rootCmd.PersistentFlags().String("policy", "", "Unknown grammeme policy: 'strict' or 'isolate'")
	rootCmd.PersistentFlags().String("cache", "", "Response cache: 'none', 'memory' or 'redis'")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: 'text' or 'json'")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	overrides := map[string]*string{
		"executable": &cfg.Executable,
		"mode":       &cfg.Mode,
		"policy":     &cfg.Policy,
		"cache":      &cfg.Cache.Backend,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
	}
	for name, field := range overrides {
		if cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetString(name)
		}
	}

	return cfg, cfg.Validate()
}
