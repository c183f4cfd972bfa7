package extractor

import (
	"context"
	"log/slog"
)

// TweetExtractor is the fallback chain for Twitter/X posts: headless browser
// first (highest success rate), then nitter mirrors, then a direct probe.
type TweetExtractor struct {
	browser *BrowserExtractor
	nitter  *NitterExtractor
	direct  *DirectExtractor
}

// NewTweetExtractor builds the chain. browser may be nil when headless
// extraction is disabled.
func NewTweetExtractor(browser *BrowserExtractor, nitter *NitterExtractor, direct *DirectExtractor) *TweetExtractor {
	return &TweetExtractor{
		browser: browser,
		nitter:  nitter,
		direct:  direct,
	}
}

// Extract never fails outright: when every backend comes up empty it returns
// a placeholder tweet carrying the username and status ID parsed from the
// URL, so analysis can still make an educated guess.
func (e *TweetExtractor) Extract(ctx context.Context, url string) Tweet {
	if e.browser != nil {
		tweet, err := e.browser.ExtractTweet(ctx, url)
		if err == nil {
			return tweet
		}
	}

	if tweet, err := e.nitter.ExtractTweet(ctx, url); err == nil {
		return tweet
	}

	if tweet, err := e.direct.ExtractTweet(ctx, url); err == nil {
		return tweet
	}

	slog.Warn("tweet-extractor: all backends failed, returning placeholder", "url", url)

	username, id, _ := ParseTweetURL(url)

	return Tweet{
		Author:      "Unknown",
		Username:    username,
		ID:          id,
		Url:         url,
		Placeholder: true,
	}
}
