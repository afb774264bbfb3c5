package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"steamlens/lib/cliutil"
	"steamlens/lib/reviewcsv"
	"steamlens/services/pipeline"
)

var cleanIn *string
var cleanOut *string

func init() {
	cleanIn = cleanCmd.Flags().String("in", "raw_reviews.csv", "The raw reviews csv to clean.")
	cleanOut = cleanCmd.Flags().String("out", "reviews_cleaned.csv", "The csv file to write cleaned reviews to.")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean [--in <path>] [--out <path>]",
	Short: "Strips the scraper's leading date phrase from review text.",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := reviewcsv.Read(*cleanIn, reviewcsv.ColumnsRaw)
		if err != nil {
			cliutil.Fatal("failed to read input csv", err)
		}

		cleaned := pipeline.Clean(cmd.Context(), records)

		err = reviewcsv.Write(*cleanOut, reviewcsv.ColumnsRaw, cleaned)
		if err != nil {
			cliutil.Fatal("failed to write csv", err)
		}
		slog.Info("cleaned reviews", "count", len(cleaned), "out", *cleanOut)
	},
}
