// Package reviewcsv reads and writes the CSV snapshot files each
// pipeline stage exchanges. Files are UTF-8 with a byte-order mark,
// matching what spreadsheet tools expect from the dataset.
package reviewcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Review is one scraped review record as it flows through the
// pipeline. RawLabels, Tags and ParseFailed stay zero-valued until the
// tag and normalize stages fill them in.
type Review struct {
	UserName  string
	Recommend string
	Hours     string
	Date      string
	Text      string

	// raw model output, or the "error" sentinel when the call failed
	RawLabels string
	// sorted canonical tag set
	Tags []string
	// true when RawLabels could not be parsed into any tokens
	ParseFailed bool
}

// Columns describes which column set a snapshot file carries.
type Columns int

const (
	// user_name, recommend, hours, date, review
	ColumnsRaw Columns = iota
	// + llm_labels
	ColumnsLabeled
	// + tags, parse_failed
	ColumnsNormalized
)

const bom = "\uFEFF"

// TagSeparator joins the canonical tag set in the tags column.
const TagSeparator = ";"

func header(cols Columns) []string {
	h := []string{"user_name", "recommend", "hours", "date", "review"}
	if cols >= ColumnsLabeled {
		h = append(h, "llm_labels")
	}
	if cols >= ColumnsNormalized {
		h = append(h, "tags", "parse_failed")
	}
	return h
}

func toRow(r Review, cols Columns) []string {
	row := []string{r.UserName, r.Recommend, r.Hours, r.Date, r.Text}
	if cols >= ColumnsLabeled {
		row = append(row, r.RawLabels)
	}
	if cols >= ColumnsNormalized {
		row = append(row,
			strings.Join(r.Tags, TagSeparator),
			strconv.FormatBool(r.ParseFailed),
		)
	}
	return row
}

func fromRow(row []string, cols Columns) (Review, error) {
	want := len(header(cols))
	if len(row) != want {
		return Review{}, fmt.Errorf("expected %d columns, got %d", want, len(row))
	}

	r := Review{
		UserName:  row[0],
		Recommend: row[1],
		Hours:     row[2],
		Date:      row[3],
		Text:      row[4],
	}
	if cols >= ColumnsLabeled {
		r.RawLabels = row[5]
	}
	if cols >= ColumnsNormalized {
		if row[6] != "" {
			r.Tags = strings.Split(row[6], TagSeparator)
		}
		failed, err := strconv.ParseBool(row[7])
		if err != nil {
			return Review{}, fmt.Errorf("bad parse_failed value %q: %w", row[7], err)
		}
		r.ParseFailed = failed
	}
	return r, nil
}

// Read loads a snapshot file, tolerating a leading byte-order mark and
// lazily quoted fields (review text is free-form scraped prose).
func Read(path string, cols Columns) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrom(f, cols)
}

func ReadFrom(r io.Reader, cols Columns) ([]Review, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], bom)
	}
	start := 0
	if isHeader(rows[0]) {
		start = 1
	}

	var reviews []Review
	for i := start; i < len(rows); i++ {
		review, err := fromRow(rows[i], cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && row[0] == "user_name"
}

// Write persists a snapshot. A new file gets a byte-order mark and a
// header row; writing to an existing file appends records instead of
// failing, per the pipeline's append-on-existing policy.
func Write(path string, cols Columns, reviews []Review) error {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if !exists {
		if _, err := f.WriteString(bom); err != nil {
			return err
		}
	}

	writer := csv.NewWriter(f)
	if !exists {
		if err := writer.Write(header(cols)); err != nil {
			return err
		}
	}
	for _, review := range reviews {
		if err := writer.Write(toRow(review, cols)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
