// Package steam scrapes user reviews off the Steam community review
// listing pages.
package steam

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"steamlens/lib/telemetry"
)

// Review is one review card as scraped off the listing page. Fields
// that are absent from the markup fall back to sentinel strings.
type Review struct {
	Author    string
	Recommend string
	Hours     string
	Date      string
	// full card text, still carrying the leading "Posted: ..." phrase;
	// the clean stage strips it.
	Text string
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// defaults to https://steamcommunity.com
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://steamcommunity.com"
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	// the listing renders mature-content interstitials without these
	client.SetCookie(&http.Cookie{Name: "wants_mature_content", Value: "1"})
	client.SetCookie(&http.Cookie{Name: "birthtime", Value: "0"})
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "steamlens.lib.scrapers.steam.http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// FetchReviews walks up to `pages` listing pages for an app and
// returns every review card found. A page that fails to fetch or
// parse is logged and skipped; the call errors out only when nothing
// could be fetched at all.
func (c *Client) FetchReviews(ctx context.Context, appId string, pages int) ([]Review, error) {
	ctx, span := tracer.Start(ctx, "client:FetchReviews")
	defer span.End()

	var reviews []Review
	var errList []error
	for page := 1; page <= pages; page++ {
		pageReviews, err := c.fetchPage(ctx, appId, page)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch review page", "app_id", appId, "page", page, "err", err)
			errList = append(errList, fmt.Errorf("page %d: %w", page, err))
			continue
		}
		if len(pageReviews) == 0 {
			slog.InfoContext(ctx, "review listing exhausted", "app_id", appId, "page", page)
			break
		}

		slog.DebugContext(ctx, "scraped review page", "app_id", appId, "page", page, "reviews", len(pageReviews))
		reviews = append(reviews, pageReviews...)
	}

	if len(reviews) == 0 && len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return reviews, nil
}

func (c *Client) fetchPage(ctx context.Context, appId string, page int) ([]Review, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("browsefilter", "mostrecent").
		SetQueryParam("p", strconv.Itoa(page)).
		Get(fmt.Sprintf("/app/%s/reviews/", url.PathEscape(appId)))
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("review listing returned %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, err
	}

	return ParseReviews(ctx, doc), nil
}
