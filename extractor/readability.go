package extractor

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-shiori/go-readability"
)

type ReadabilityExtractor struct {
	timeout time.Duration
}

func NewReadabilityExtractor(timeout time.Duration) *ReadabilityExtractor {
	return &ReadabilityExtractor{timeout: timeout}
}

func (e *ReadabilityExtractor) Name() string {
	return "readability"
}

func (e *ReadabilityExtractor) GetArticleFromUrl(ctx context.Context, url string) (Article, error) {
	slog.Info("readability-extractor: requested extraction from URL", "url", url)

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	article, err := readability.FromURL(url, timeout)
	if err != nil {
		slog.Error("readability-extractor: failed extracting from URL", "url", url, "error", err)
		sentry.CaptureException(err)

		return Article{}, ErrExtractFailed
	}

	slog.Debug("readability-extractor: article extracted", "title", article.Title)

	return Article{
		Title:       article.Title,
		Description: article.Excerpt,
		Text:        article.TextContent,
		Url:         url,
	}, nil
}
