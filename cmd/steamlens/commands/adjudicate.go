package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"steamlens/lib/cliutil"
	"steamlens/lib/reviewcsv"
	"steamlens/lib/sqliteutil"
	"steamlens/services/adjudication"
	"steamlens/services/adjudication/db"
)

var adjudicateIn *string
var adjudicateDb *string
var adjudicateSession *string

func init() {
	adjudicateIn = adjudicateCmd.Flags().String("in", "reviews_normalized.csv", "The normalized reviews csv the session was drawn from.")
	adjudicateDb = adjudicateCmd.Flags().String("db", "adjudication.db", "The database holding sessions and judgments.")
	adjudicateSession = adjudicateCmd.Flags().String("session", "", "The session id to adjudicate.")
	adjudicateCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(adjudicateCmd)
}

var adjudicateCmd = &cobra.Command{
	Use:   "adjudicate --session <id> [--in <path>] [--db <path>]",
	Short: "Walks the pending sampled reviews and records correct/incorrect judgments.",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := reviewcsv.Read(*adjudicateIn, reviewcsv.ColumnsNormalized)
		if err != nil {
			cliutil.Fatal("failed to read input csv", err)
		}

		database, err := sqliteutil.OpenDB(db.Schema, *adjudicateDb)
		if err != nil {
			cliutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := adjudication.NewStore(database)

		session, err := store.GetSession(cmd.Context(), *adjudicateSession)
		if err != nil {
			cliutil.Fatal("failed to load session", err)
		}
		if session.Population != len(records) {
			cliutil.Fatal("dataset does not match session", fmt.Errorf(
				"session was drawn from %d records but %s has %d",
				session.Population, *adjudicateIn, len(records),
			))
		}

		pending, err := store.Pending(cmd.Context(), session.Id)
		if err != nil {
			cliutil.Fatal("failed to list pending reviews", err)
		}
		if len(pending) == 0 {
			fmt.Println("nothing left to adjudicate in this session")
			return
		}

		stdin := bufio.NewScanner(os.Stdin)
		for n, idx := range pending {
			review := records[idx]

			t := cliutil.NewTable()
			t.AppendHeader(table.Row{"field", "value"})
			t.AppendRow(table.Row{"progress", fmt.Sprintf("%d/%d", n+1, len(pending))})
			t.AppendRow(table.Row{"user", review.UserName})
			t.AppendRow(table.Row{"recommend", review.Recommend})
			t.AppendRow(table.Row{"tags", strings.Join(review.Tags, ", ")})
			t.AppendRow(table.Row{"review", review.Text})
			t.Render()

			verdict, stop := promptVerdict(stdin)
			if stop {
				fmt.Println("stopping, progress is saved")
				return
			}
			if verdict == verdictSkip {
				continue
			}

			err := store.RecordJudgment(cmd.Context(), session.Id, idx, verdict == verdictCorrect)
			if err != nil {
				cliutil.Fatal("failed to record judgment", err)
			}
		}

		fmt.Println("session fully adjudicated, run `steamlens estimate` for the report")
	},
}

type verdict int

const (
	verdictCorrect verdict = iota
	verdictIncorrect
	verdictSkip
)

func promptVerdict(stdin *bufio.Scanner) (verdict, bool) {
	for {
		fmt.Print("tags correct? [y]es / [n]o / [s]kip / [q]uit: ")
		if !stdin.Scan() {
			return verdictSkip, true
		}
		switch strings.ToLower(strings.TrimSpace(stdin.Text())) {
		case "y", "yes":
			return verdictCorrect, false
		case "n", "no":
			return verdictIncorrect, false
		case "s", "skip":
			return verdictSkip, false
		case "q", "quit":
			return verdictSkip, true
		}
	}
}
