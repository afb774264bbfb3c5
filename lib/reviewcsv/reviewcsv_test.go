package reviewcsv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleReviews() []Review {
	return []Review{
		{
			UserName:  "gamer1",
			Recommend: "Recommended",
			Hours:     "51.3",
			Date:      "June 10",
			Text:      "Posted: June 10 Great game, some bugs though.",
		},
		{
			UserName:  "Anonymous",
			Recommend: "Not Recommended",
			Hours:     "2.1",
			Date:      "Unknown",
			Text:      "Crashes on startup, \"unplayable\".",
		},
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw_reviews.csv")

	err := Write(path, ColumnsRaw, sampleReviews())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "\uFEFF"), "output must carry a BOM")

	got, err := Read(path, ColumnsRaw)
	require.NoError(t, err)
	require.Equal(t, sampleReviews(), got)
}

func TestWriteAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw_reviews.csv")

	require.NoError(t, Write(path, ColumnsRaw, sampleReviews()[:1]))
	require.NoError(t, Write(path, ColumnsRaw, sampleReviews()[1:]))

	got, err := Read(path, ColumnsRaw)
	require.NoError(t, err)
	require.Equal(t, sampleReviews(), got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "user_name"), "header written once")
}

func TestNormalizedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews_normalized.csv")

	in := sampleReviews()
	in[0].RawLabels = `["bugs", "fun"]`
	in[0].Tags = []string{"bug", "fun"}
	in[1].RawLabels = "error"
	in[1].ParseFailed = true

	require.NoError(t, Write(path, ColumnsNormalized, in))

	got, err := Read(path, ColumnsNormalized)
	require.NoError(t, err)
	require.Equal(t, in, got)
	require.True(t, got[1].ParseFailed)
	require.Nil(t, got[1].Tags)
}

func TestReadColumnMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw_reviews.csv")
	require.NoError(t, Write(path, ColumnsRaw, sampleReviews()))

	_, err := Read(path, ColumnsLabeled)
	require.ErrorContains(t, err, "columns")
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	got, err := Read(path, ColumnsRaw)
	require.NoError(t, err)
	require.Nil(t, got)
}
