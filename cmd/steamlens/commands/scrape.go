package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"steamlens/lib/cliutil"
	"steamlens/lib/reviewcsv"
	"steamlens/lib/scrapers/steam"
)

var scrapeApp *string
var scrapePages *int
var scrapeOut *string

func init() {
	scrapeApp = scrapeCmd.Flags().String("app", "", "The steam app id to scrape reviews for.")
	scrapePages = scrapeCmd.Flags().Int("pages", 10, "How many listing pages to walk.")
	scrapeOut = scrapeCmd.Flags().String("out", "raw_reviews.csv", "The csv file to write scraped reviews to.")
	scrapeCmd.MarkFlagRequired("app")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --app <id> [--pages <n>] [--out <path>]",
	Short: "Scrapes steam community reviews for an app into a csv snapshot.",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := steam.NewClient(steam.ClientOptions{})
		if err != nil {
			cliutil.Fatal("failed to initialize steam client", err)
		}

		t1 := time.Now()
		scraped, err := client.FetchReviews(cmd.Context(), *scrapeApp, *scrapePages)
		if err != nil {
			cliutil.Fatal("failed to fetch reviews", err)
		}

		records := make([]reviewcsv.Review, len(scraped))
		for i, r := range scraped {
			records[i] = reviewcsv.Review{
				UserName:  r.Author,
				Recommend: r.Recommend,
				Hours:     r.Hours,
				Date:      r.Date,
				Text:      r.Text,
			}
		}
		err = reviewcsv.Write(*scrapeOut, reviewcsv.ColumnsRaw, records)
		if err != nil {
			cliutil.Fatal("failed to write csv", err)
		}

		slog.Info("scraped reviews",
			"app", *scrapeApp,
			"count", len(records),
			"out", *scrapeOut,
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
