package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// NitterExtractor scrapes tweets through public nitter mirrors. Instances
// come and go, so each one is tried in turn.
type NitterExtractor struct {
	client    *http.Client
	instances []string
}

func NewNitterExtractor(instances []string, timeout time.Duration) *NitterExtractor {
	return &NitterExtractor{
		client:    &http.Client{Timeout: timeout},
		instances: instances,
	}
}

func (e *NitterExtractor) ExtractTweet(ctx context.Context, url string) (Tweet, error) {
	username, id, ok := ParseTweetURL(url)
	if !ok {
		return Tweet{}, ErrExtractFailed
	}

	for _, instance := range e.instances {
		if ctx.Err() != nil {
			return Tweet{}, ErrExtractFailed
		}

		nitterURL := fmt.Sprintf("https://%s/i/status/%s", instance, id)

		slog.Info("nitter-extractor: attempting extraction", "instance", instance, "url", nitterURL)

		doc, err := fetchDocument(ctx, e.client, nitterURL)
		if err != nil {
			slog.Warn("nitter-extractor: instance failed", "instance", instance, "error", err)
			continue
		}

		tweet, found := tweetFromNitterDocument(doc)
		if !found {
			slog.Warn("nitter-extractor: no tweet content on page", "instance", instance)
			continue
		}

		tweet.Username = username
		tweet.ID = id
		tweet.Url = url

		slog.Info("nitter-extractor: tweet extracted", "instance", instance, "author", tweet.Author)

		return tweet, nil
	}

	slog.Error("nitter-extractor: all instances failed", "url", url)

	return Tweet{}, ErrExtractFailed
}

// tweetFromNitterDocument pulls tweet fields out of a rendered nitter page.
func tweetFromNitterDocument(doc *goquery.Document) (Tweet, bool) {
	contentSel := doc.Find(".tweet-content").First()
	if contentSel.Length() == 0 {
		return Tweet{}, false
	}

	content := cleanText(contentSel.Text())
	if content == "" {
		return Tweet{}, false
	}

	author := cleanText(doc.Find(".fullname").First().Text())
	if author == "" {
		author = "Unknown"
	}

	timestamp := cleanText(doc.Find(".tweet-date a").First().Text())

	var images []string
	doc.Find(".attachment .still-image").Each(func(_ int, sel *goquery.Selection) {
		if src, exists := sel.Attr("src"); exists && src != "" {
			images = append(images, src)
		}
	})

	// Stats containers carry an icon class and the bare count.
	var stats TweetStats
	doc.Find(".tweet-stats .icon-container").Each(func(_ int, sel *goquery.Selection) {
		fields := strings.Fields(cleanText(sel.Text()))
		if len(fields) == 0 {
			return
		}

		switch {
		case sel.Find(".icon-comment").Length() > 0:
			stats.Replies = fields[0]
		case sel.Find(".icon-retweet").Length() > 0:
			stats.Retweets = fields[0]
		case sel.Find(".icon-heart").Length() > 0:
			stats.Likes = fields[0]
		}
	})

	return Tweet{
		Content:   content,
		Author:    author,
		Timestamp: timestamp,
		Images:    images,
		Stats:     stats,
	}, true
}

// DirectExtractor probes twitter.com HTML directly. Rarely works without
// JavaScript but costs one request to try.
type DirectExtractor struct {
	client *http.Client
}

func NewDirectExtractor(timeout time.Duration) *DirectExtractor {
	return &DirectExtractor{
		client: &http.Client{Timeout: timeout},
	}
}

var directTweetSelectors = []string{
	`article div[lang]`,
	`[data-testid="tweetText"]`,
	`.tweet-text`,
}

func (e *DirectExtractor) ExtractTweet(ctx context.Context, url string) (Tweet, error) {
	slog.Info("direct-extractor: attempting direct extraction", "url", url)

	doc, err := fetchDocument(ctx, e.client, url)
	if err != nil {
		slog.Warn("direct-extractor: fetch failed", "url", url, "error", err)
		return Tweet{}, ErrExtractFailed
	}

	for _, selector := range directTweetSelectors {
		content := cleanText(doc.Find(selector).First().Text())
		if content == "" {
			continue
		}

		username, id, _ := ParseTweetURL(url)

		return Tweet{
			Content:  content,
			Author:   "Unknown",
			Username: username,
			ID:       id,
			Url:      url,
		}, nil
	}

	return Tweet{}, ErrExtractFailed
}

func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", desktopUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
