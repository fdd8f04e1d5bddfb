package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/mystem"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mystem",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mystem version %s\n", strings.TrimSpace(mystem.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
