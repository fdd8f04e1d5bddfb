package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/mystem/internal/dto"
	"github.com/aretw0/mystem/pkg/grammem"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every part of speech and grammeme code the decoder knows",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := dto.Tags()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(table)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tKIND\tNAME")
		for _, code := range grammem.PartOfSpeechCodes() {
			fmt.Fprintf(w, "%s\tPartOfSpeech\t%s\n", code, table.PartsOfSpeech[code])
		}
		for _, code := range grammem.FactCodes() {
			f := table.Facts[code]
			fmt.Fprintf(w, "%s\t%s\t%s\n", code, f.Category, f.Value)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().Bool("json", false, "Print the table as JSON")
}
