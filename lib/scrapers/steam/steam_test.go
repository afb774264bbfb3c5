package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"steamlens/lib/telemetry"
)

const listingFixture = `
<html><body>
<div class="apphub_Card">
	<div class="apphub_CardTextContent">
		<div class="date_posted">Posted: June 10</div>
		Great game, some bugs though.
	</div>
	<div class="apphub_CardRating title">Recommended</div>
	<div class="hours">51.3 hrs on record</div>
	<div class="apphub_CardContentAuthorName"><a href="#">gamer1</a></div>
</div>
<div class="apphub_Card">
	<div class="apphub_CardTextContent">
		<div class="date_posted">Posted: December 3, 2023</div>
		Crashes on startup.
	</div>
	<div class="apphub_CardRating title">Not Recommended</div>
	<div class="hours">2 hrs on record</div>
	<div class="apphub_CardContentAuthorName"><a href="#">gamer2</a></div>
</div>
<div class="apphub_Card">
	<div class="apphub_CardTextContent"></div>
</div>
</body></html>`

func TestParseReviews(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/steam")
	defer cleanup()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingFixture))
	require.NoError(t, err)

	reviews := ParseReviews(context.Background(), doc)

	want := []Review{
		{
			Author:    "gamer1",
			Recommend: "Recommended",
			Hours:     "51.3",
			Date:      "June 10",
			Text:      "Posted: June 10 Great game, some bugs though.",
		},
		{
			Author:    "gamer2",
			Recommend: "Not Recommended",
			Hours:     "2",
			Date:      "December 3, 2023",
			Text:      "Posted: December 3, 2023 Crashes on startup.",
		},
		// absent markup degrades to sentinels
		{
			Author:    "Anonymous",
			Recommend: "Unknown",
			Hours:     "0",
			Date:      "Unknown",
			Text:      "No Content",
		},
	}
	require.Empty(t, cmp.Diff(want, reviews))
}

func TestFetchReviewsSkipsFailedPages(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/steam")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("p") {
		case "1":
			w.Write([]byte(listingFixture))
		case "2":
			http.Error(w, "nope", http.StatusBadGateway)
		default:
			w.Write([]byte("<html><body></body></html>"))
		}
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	reviews, err := client.FetchReviews(context.Background(), "440", 3)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
}

func TestFetchReviewsAllPagesFailed(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/steam")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.FetchReviews(context.Background(), "440", 2)
	require.Error(t, err)
}
