// Package pipeline runs the batch stages between CSV snapshots:
// cleaning review text, tagging it with the language model, and
// normalizing the raw tags into the canonical vocabulary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"steamlens/lib/llm"
	"steamlens/lib/reviewcsv"
	"steamlens/lib/tagnorm"
	"steamlens/lib/telemetry"
	"steamlens/lib/textclean"
)

var tracer = telemetry.Tracer("steamlens.services.pipeline")

// ErrLabelSentinel is the value recorded in llm_labels when the model
// call failed for a record. The normalizer treats it as unparsable.
const ErrLabelSentinel = "error"

const promptTemplate = `You are labeling Steam game reviews. Read the review below and reply with a list of 1 to 5 short topic tags in the form ["tag one", "tag two"]. Reply with the list only, no explanation.

Review:
%s`

// Clean strips the scraper's leading date phrase from every review's
// text. Input records are not mutated.
func Clean(ctx context.Context, records []reviewcsv.Review) []reviewcsv.Review {
	ctx, span := tracer.Start(ctx, "Clean")
	defer span.End()

	out := make([]reviewcsv.Review, len(records))
	for i, r := range records {
		r.Text = textclean.StripPostedPrefix(r.Text)
		out[i] = r
	}

	slog.InfoContext(ctx, "cleaned reviews", "count", len(out))
	return out
}

// Tag sends every review's text to the model and records the raw
// response in llm_labels. A record whose call fails (the client already
// retried once) gets the error sentinel and the batch moves on; one
// bad record never aborts the run.
func Tag(ctx context.Context, client llm.Client, records []reviewcsv.Review) []reviewcsv.Review {
	ctx, span := tracer.Start(ctx, "Tag")
	defer span.End()

	out := make([]reviewcsv.Review, len(records))
	failures := 0
	for i, r := range records {
		prompt := fmt.Sprintf(promptTemplate, r.Text)

		response, err := client.Complete(ctx, prompt)
		if err != nil {
			slog.WarnContext(ctx, "model call failed for record", "index", i, "err", err)
			response = ErrLabelSentinel
			failures++
		}

		r.RawLabels = response
		out[i] = r

		if (i+1)%25 == 0 {
			slog.InfoContext(ctx, "tagging progress", "done", i+1, "total", len(records))
		}
	}

	span.SetAttributes(
		attribute.Int("records", len(records)),
		attribute.Int("failures", failures),
	)
	slog.InfoContext(ctx, "tagged reviews", "count", len(out), "failures", failures)
	return out
}

// Normalize resolves every record's raw labels through the synonym
// map. Records whose labels cannot be parsed get an empty tag set and
// the parse_failed flag instead of failing the batch.
func Normalize(ctx context.Context, m tagnorm.SynonymMap, records []reviewcsv.Review) []reviewcsv.Review {
	ctx, span := tracer.Start(ctx, "Normalize")
	defer span.End()

	out := make([]reviewcsv.Review, len(records))
	parseFailures := 0
	unmapped := map[string]struct{}{}
	for i, r := range records {
		tags, err := tagnorm.Normalize(r.RawLabels, m)
		if errors.Is(err, tagnorm.ErrUnparsable) {
			r.Tags = nil
			r.ParseFailed = true
			parseFailures++
		} else {
			r.Tags = tags
			r.ParseFailed = false
			for _, tag := range tags {
				if !m.Knows(tag) {
					unmapped[tag] = struct{}{}
				}
			}
		}
		out[i] = r
	}

	span.SetAttributes(
		attribute.Int("records", len(records)),
		attribute.Int("parse_failures", parseFailures),
		attribute.Int("unmapped_tags", len(unmapped)),
	)
	slog.InfoContext(ctx, "normalized reviews",
		"count", len(out),
		"parse_failures", parseFailures,
		"unmapped_tags", len(unmapped),
	)
	return out
}

// UnmappedTags reports the canonical forms in the normalized records
// that have no synonym map entry, so the map can be grown deliberately.
func UnmappedTags(m tagnorm.SynonymMap, records []reviewcsv.Review) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range records {
		for _, tag := range r.Tags {
			if m.Knows(tag) {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
