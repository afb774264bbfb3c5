package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"steamlens/lib/llm"
	"steamlens/lib/reviewcsv"
	"steamlens/lib/tagnorm"
	"steamlens/lib/telemetry"
)

type failingModel struct{}

func (failingModel) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("model unreachable")
}

func cleanedRows() []reviewcsv.Review {
	return []reviewcsv.Review{
		{UserName: "gamer1", Recommend: "Recommended", Hours: "51.3", Date: "June 10", Text: "Great game, some bugs though."},
		{UserName: "gamer2", Recommend: "Not Recommended", Hours: "2", Date: "June 11", Text: "Crashes on startup."},
		{UserName: "gamer3", Recommend: "Recommended", Hours: "14", Date: "June 12", Text: "Buggy but fun."},
	}
}

func TestClean(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pipeline")
	defer cleanup()

	in := []reviewcsv.Review{
		{UserName: "gamer1", Text: "Posted: June 10 Great game."},
		{UserName: "gamer2", Text: "No date prefix here."},
	}
	out := Clean(context.Background(), in)

	require.Equal(t, "Great game.", out[0].Text)
	require.Equal(t, "No date prefix here.", out[1].Text)
	// input snapshot untouched
	require.Equal(t, "Posted: June 10 Great game.", in[0].Text)
}

func TestTagRecordsSentinelOnFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pipeline")
	defer cleanup()

	out := Tag(context.Background(), failingModel{}, cleanedRows())
	require.Len(t, out, 3)
	for _, r := range out {
		require.Equal(t, ErrLabelSentinel, r.RawLabels)
	}
}

// the end to end scenario: three cleaned rows, a fixed model, and an
// identity-ish synonym map must tag every row {bug, crash}.
func TestCleanTagNormalizeEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pipeline")
	defer cleanup()
	ctx := context.Background()

	dir := t.TempDir()
	cleanedPath := filepath.Join(dir, "reviews_cleaned.csv")
	labeledPath := filepath.Join(dir, "reviews_with_llm_labels.csv")
	normalizedPath := filepath.Join(dir, "reviews_normalized.csv")

	require.NoError(t, reviewcsv.Write(cleanedPath, reviewcsv.ColumnsRaw, cleanedRows()))

	cleaned, err := reviewcsv.Read(cleanedPath, reviewcsv.ColumnsRaw)
	require.NoError(t, err)
	require.Len(t, cleaned, 3)

	model := llm.Static{Response: `["bug","Bug","crash"]`}
	labeled := Tag(ctx, model, cleaned)
	require.NoError(t, reviewcsv.Write(labeledPath, reviewcsv.ColumnsLabeled, labeled))

	labeled, err = reviewcsv.Read(labeledPath, reviewcsv.ColumnsLabeled)
	require.NoError(t, err)

	m := tagnorm.SynonymMap{"bug": "bug", "crash": "crash"}
	normalized := Normalize(ctx, m, labeled)
	require.NoError(t, reviewcsv.Write(normalizedPath, reviewcsv.ColumnsNormalized, normalized))

	final, err := reviewcsv.Read(normalizedPath, reviewcsv.ColumnsNormalized)
	require.NoError(t, err)
	require.Len(t, final, 3)
	for _, r := range final {
		require.Equal(t, []string{"bug", "crash"}, r.Tags)
		require.False(t, r.ParseFailed)
	}
}

func TestNormalizeIsolatesParseFailures(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pipeline")
	defer cleanup()

	records := []reviewcsv.Review{
		{RawLabels: `["bugs", "UI"]`},
		{RawLabels: ErrLabelSentinel},
		{RawLabels: "this review talks about many things"},
	}
	m := tagnorm.SynonymMap{"bugs": "bug", "ui": "ui"}

	out := Normalize(context.Background(), m, records)
	require.Equal(t, []string{"bug", "ui"}, out[0].Tags)
	require.False(t, out[0].ParseFailed)

	for _, r := range out[1:] {
		require.Nil(t, r.Tags)
		require.True(t, r.ParseFailed)
	}
}

func TestUnmappedTags(t *testing.T) {
	m := tagnorm.SynonymMap{"bugs": "bug"}
	records := []reviewcsv.Review{
		{Tags: []string{"bug", "performance"}},
		{Tags: []string{"performance", "story"}},
	}
	require.Equal(t, []string{"performance", "story"}, UnmappedTags(m, records))
}
