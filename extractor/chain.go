package extractor

import (
	"context"
	"log/slog"
)

// ArticleChain tries each backend in order and returns the first article
// with non-empty text.
type ArticleChain struct {
	extractors []ArticleExtractor
}

func NewArticleChain(extractors ...ArticleExtractor) *ArticleChain {
	return &ArticleChain{extractors: extractors}
}

func (c *ArticleChain) Name() string {
	return "chain"
}

func (c *ArticleChain) GetArticleFromUrl(ctx context.Context, url string) (Article, error) {
	for _, e := range c.extractors {
		if ctx.Err() != nil {
			return Article{}, ErrExtractFailed
		}

		article, err := e.GetArticleFromUrl(ctx, url)
		if err != nil {
			slog.Warn("extractor-chain: backend failed, trying next", "backend", e.Name(), "url", url)
			continue
		}

		if cleanText(article.Text) == "" {
			slog.Warn("extractor-chain: backend returned empty text, trying next", "backend", e.Name(), "url", url)
			continue
		}

		article.Text = truncateText(article.Text, MaxArticleLength)

		slog.Info("extractor-chain: article extracted", "backend", e.Name(), "url", url)

		return article, nil
	}

	slog.Error("extractor-chain: all backends failed", "url", url)

	return Article{}, ErrExtractFailed
}
