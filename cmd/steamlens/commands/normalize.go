package commands

import (
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"steamlens/lib/cliutil"
	"steamlens/lib/reviewcsv"
	"steamlens/lib/tagnorm"
	"steamlens/services/pipeline"
)

var normalizeIn *string
var normalizeOut *string
var normalizeSuggest *bool

func init() {
	normalizeIn = normalizeCmd.Flags().String("in", "reviews_with_llm_labels.csv", "The labeled reviews csv to normalize.")
	normalizeOut = normalizeCmd.Flags().String("out", "reviews_normalized.csv", "The csv file to write normalized reviews to.")
	normalizeSuggest = normalizeCmd.Flags().Bool("suggest", false, "Print synonym suggestions for tags missing from the map.")
	rootCmd.AddCommand(normalizeCmd)
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [--in <path>] [--out <path>] [--suggest]",
	Short: "Maps raw model tags onto the canonical vocabulary from the synonym config.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		synonyms, err := tagnorm.LoadSynonyms(cfg.Synonyms)
		if err != nil {
			cliutil.Fatal("failed to load synonym map", err)
		}

		records, err := reviewcsv.Read(*normalizeIn, reviewcsv.ColumnsLabeled)
		if err != nil {
			cliutil.Fatal("failed to read input csv", err)
		}

		normalized := pipeline.Normalize(cmd.Context(), synonyms, records)

		err = reviewcsv.Write(*normalizeOut, reviewcsv.ColumnsNormalized, normalized)
		if err != nil {
			cliutil.Fatal("failed to write csv", err)
		}
		slog.Info("normalized reviews", "count", len(normalized), "out", *normalizeOut)

		if !*normalizeSuggest {
			return
		}
		unmapped := pipeline.UnmappedTags(synonyms, normalized)
		if len(unmapped) == 0 {
			fmt.Println("every tag is covered by the synonym map")
			return
		}

		t := cliutil.NewTable()
		t.AppendHeader(table.Row{"unmapped tag", "closest canonical", "similarity"})
		for _, tag := range unmapped {
			suggestions := tagnorm.Suggest(tag, synonyms, 0.75)
			if len(suggestions) == 0 {
				t.AppendRow(table.Row{tag, "", ""})
				continue
			}
			best := suggestions[0]
			t.AppendRow(table.Row{tag, best.Canonical, fmt.Sprintf("%.2f", best.Similarity)})
		}
		t.Render()
	},
}
