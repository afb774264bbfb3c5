package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"steamlens/lib/cliutil"
	"steamlens/lib/reviewcsv"
	"steamlens/services/pipeline"
)

var tagIn *string
var tagOut *string

func init() {
	tagIn = tagCmd.Flags().String("in", "reviews_cleaned.csv", "The cleaned reviews csv to tag.")
	tagOut = tagCmd.Flags().String("out", "reviews_with_llm_labels.csv", "The csv file to write labeled reviews to.")
	rootCmd.AddCommand(tagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag [--in <path>] [--out <path>]",
	Short: "Labels every review with topic tags from the configured local model.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		client := cfg.newModelClient()

		records, err := reviewcsv.Read(*tagIn, reviewcsv.ColumnsRaw)
		if err != nil {
			cliutil.Fatal("failed to read input csv", err)
		}

		slog.Info("tagging reviews", "count", len(records), "model", cfg.Ollama.Model)
		t1 := time.Now()
		labeled := pipeline.Tag(cmd.Context(), client, records)
		slog.Info("tagging time", "seconds", time.Since(t1).Seconds())

		err = reviewcsv.Write(*tagOut, reviewcsv.ColumnsLabeled, labeled)
		if err != nil {
			cliutil.Fatal("failed to write csv", err)
		}
	},
}
