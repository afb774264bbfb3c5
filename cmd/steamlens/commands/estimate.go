package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"steamlens/lib/cliutil"
	"steamlens/lib/sqliteutil"
	"steamlens/services/adjudication"
	"steamlens/services/adjudication/db"
)

var estimateDb *string
var estimateSession *string

func init() {
	estimateDb = estimateCmd.Flags().String("db", "adjudication.db", "The database holding sessions and judgments.")
	estimateSession = estimateCmd.Flags().String("session", "", "The session id to report on; omit to list sessions.")
	rootCmd.AddCommand(estimateCmd)
}

var estimateCmd = &cobra.Command{
	Use:   "estimate [--session <id>] [--db <path>]",
	Short: "Reports the estimated tagging accuracy from a session's judgments.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *estimateDb)
		if err != nil {
			cliutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := adjudication.NewStore(database)

		if *estimateSession == "" {
			sessions, err := store.ListSessions(cmd.Context())
			if err != nil {
				cliutil.Fatal("failed to list sessions", err)
			}

			t := cliutil.NewTable()
			t.AppendHeader(table.Row{"session", "app", "source", "seed", "fraction", "population", "created"})
			for _, s := range sessions {
				t.AppendRow(table.Row{
					s.Id, s.AppId, s.Source, s.Seed, s.Fraction,
					s.Population, s.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
			t.Render()
			return
		}

		report, err := store.Summary(cmd.Context(), *estimateSession)
		if err != nil {
			cliutil.Fatal("failed to summarize session", err)
		}

		t := cliutil.NewTable()
		t.AppendHeader(table.Row{"judged", "correct", "accuracy", "std error", "95% interval (wald)"})
		t.AppendRow(table.Row{
			report.Sampled,
			report.Correct,
			fmt.Sprintf("%.3f", report.Proportion),
			fmt.Sprintf("%.3f", report.StdErr),
			fmt.Sprintf("[%.3f, %.3f]", report.Lo, report.Hi),
		})
		t.Render()
	},
}
