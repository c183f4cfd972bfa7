package extractor

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrExtractFailed = errors.New("extraction failed")
)

// MaxArticleLength caps extracted article text to keep LLM prompts within
// token limits.
const MaxArticleLength = 8000

type Article struct {
	Title       string
	Description string
	Text        string
	Url         string
}

type TweetStats struct {
	Replies  string
	Retweets string
	Likes    string
}

type Tweet struct {
	Content   string
	Author    string
	Timestamp string
	Images    []string
	Stats     TweetStats
	Username  string
	ID        string
	Url       string

	// Placeholder is set when no backend could extract the tweet content and
	// only URL-derived hints (Username, ID) are available.
	Placeholder bool
}

// ArticleExtractor extracts readable content from a general website URL.
type ArticleExtractor interface {
	Name() string
	GetArticleFromUrl(ctx context.Context, url string) (Article, error)
}

var tweetStatusRe = regexp.MustCompile(`(?:twitter|x)\.com/([^/\s]+)/status/(\d+)`)

// ParseTweetURL extracts the username and status ID from a Twitter/X URL.
func ParseTweetURL(url string) (username string, id string, ok bool) {
	matches := tweetStatusRe.FindStringSubmatch(url)
	if len(matches) != 3 {
		return "", "", false
	}

	return matches[1], matches[2], true
}

func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	return string(runes[:max]) + "... [content truncated]"
}

func cleanText(text string) string {
	return strings.TrimSpace(text)
}
