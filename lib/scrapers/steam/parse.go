package steam

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"steamlens/lib/htmlutil"
	"steamlens/lib/textutil"
)

var hoursRegex = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseReviews extracts every review card from a listing document.
// Missing markup never fails a card, fields degrade to their sentinel
// defaults instead.
func ParseReviews(ctx context.Context, doc *goquery.Document) []Review {
	ctx, span := tracer.Start(ctx, "ParseReviews")
	defer span.End()

	var reviews []Review
	doc.Find("div.apphub_Card").Each(func(_ int, card *goquery.Selection) {
		review := Review{
			Author:    "Anonymous",
			Recommend: "Unknown",
			Hours:     "0",
			Date:      "Unknown",
			Text:      "No Content",
		}

		if author := textutil.CollapseWhitespace(card.Find(".apphub_CardContentAuthorName").First().Text()); author != "" {
			review.Author = author
		}
		if verdict := textutil.CollapseWhitespace(card.Find(".title").First().Text()); verdict != "" {
			review.Recommend = verdict
		}
		if hours := hoursRegex.FindString(card.Find(".hours").First().Text()); hours != "" {
			review.Hours = hours
		}
		if date := textutil.CollapseWhitespace(card.Find(".date_posted").First().Text()); date != "" {
			review.Date = strings.TrimPrefix(date, "Posted: ")
		}

		content := card.Find(".apphub_CardTextContent")
		if len(content.Nodes) > 0 {
			text := htmlutil.GetText(content.Nodes[0])
			text = textutil.RemoveNonPrintable(text)
			text = textutil.CollapseWhitespace(text)
			if text != "" {
				review.Text = text
			}
		}

		reviews = append(reviews, review)
		span.AddEvent("review", trace.WithAttributes(
			attribute.String("author", review.Author),
			attribute.String("recommend", review.Recommend),
		))
	})

	return reviews
}
