package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"steamlens/lib/cliutil"
	"steamlens/lib/reviewcsv"
	"steamlens/lib/sqliteutil"
	"steamlens/services/adjudication"
	"steamlens/services/adjudication/db"
)

var sampleIn *string
var sampleDb *string
var sampleApp *string
var sampleFraction *float64
var sampleSeed *int64

func init() {
	sampleIn = sampleCmd.Flags().String("in", "reviews_normalized.csv", "The normalized reviews csv to sample from.")
	sampleDb = sampleCmd.Flags().String("db", "adjudication.db", "The database holding sessions and judgments.")
	sampleApp = sampleCmd.Flags().String("app", "", "The steam app id the dataset belongs to.")
	sampleFraction = sampleCmd.Flags().Float64("fraction", 0.15, "The sampling fraction.")
	sampleSeed = sampleCmd.Flags().Int64("seed", 0, "The random seed; omit to draw a fresh one from the clock.")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample [--in <path>] [--db <path>] [--fraction <p>] [--seed <n>]",
	Short: "Draws a reproducible random sample of labeled reviews for manual adjudication.",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := reviewcsv.Read(*sampleIn, reviewcsv.ColumnsNormalized)
		if err != nil {
			cliutil.Fatal("failed to read input csv", err)
		}

		seed := *sampleSeed
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		database, err := sqliteutil.OpenDB(db.Schema, *sampleDb)
		if err != nil {
			cliutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := adjudication.NewStore(database)

		session, err := store.CreateSession(cmd.Context(), adjudication.CreateSessionRequest{
			AppId:      *sampleApp,
			Source:     *sampleIn,
			Seed:       seed,
			Fraction:   *sampleFraction,
			Population: len(records),
		})
		if err != nil {
			cliutil.Fatal("failed to create session", err)
		}

		draws, err := store.Draws(cmd.Context(), session.Id)
		if err != nil {
			cliutil.Fatal("failed to read back draws", err)
		}

		t := cliutil.NewTable()
		t.AppendHeader(table.Row{"session", "population", "fraction", "seed", "sampled"})
		t.AppendRow(table.Row{session.Id, session.Population, session.Fraction, session.Seed, len(draws)})
		t.Render()
	},
}
