package extractor

import (
	"context"
	"log/slog"
	"time"

	goose "github.com/advancedlogic/GoOse"
	"github.com/getsentry/sentry-go"
)

type GoOseExtractor struct {
	goose   *goose.Goose
	timeout time.Duration
}

func NewGoOseExtractor(timeout time.Duration) *GoOseExtractor {
	gooseExtractor := goose.New()
	return &GoOseExtractor{
		goose:   &gooseExtractor,
		timeout: timeout,
	}
}

func (e *GoOseExtractor) Name() string {
	return "goose"
}

func (e *GoOseExtractor) GetArticleFromUrl(ctx context.Context, url string) (Article, error) {
	slog.Info("goose-extractor: requested extraction from URL", "url", url)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resultChan := make(chan struct {
		article *goose.Article
		err     error
	}, 1)

	go func() {
		article, err := e.goose.ExtractFromURL(url)
		resultChan <- struct {
			article *goose.Article
			err     error
		}{article, err}
	}()

	select {
	case result := <-resultChan:
		if result.err != nil {
			slog.Error("goose-extractor: failed extracting from URL", "url", url, "error", result.err)
			sentry.CaptureException(result.err)

			return Article{}, ErrExtractFailed
		}

		slog.Debug("goose-extractor: article extracted", "title", result.article.Title)

		return Article{
			Title:       result.article.Title,
			Description: result.article.MetaDescription,
			Text:        result.article.CleanedText,
			Url:         result.article.FinalURL,
		}, nil
	case <-ctx.Done():
		slog.Error("goose-extractor: extraction timed out", "url", url)
		sentry.CaptureMessage("Article extraction timed out")
		return Article{}, ErrExtractFailed
	}
}
