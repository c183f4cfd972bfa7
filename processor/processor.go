// Package processor runs the archival pipeline for a message: find URLs,
// extract content, analyze it and persist the result to Notion. It is shared
// by the bot and the one-shot command line modes.
package processor

import (
	"context"
	"fmt"
	"log/slog"

	"web-to-notion-bot/extractor"
	"web-to-notion-bot/index"
	"web-to-notion-bot/llm"
	"web-to-notion-bot/stats"
)

const (
	KindTweet   = "tweet"
	KindWebsite = "website"
)

// Analyzer produces structured analyses of extracted content.
type Analyzer interface {
	AnalyzeTweet(ctx context.Context, tweet extractor.Tweet) (*llm.TweetAnalysis, error)
	AnalyzeWebsite(ctx context.Context, article extractor.Article, url string) (*llm.WebsiteAnalysis, error)
}

// Archive persists analyzed entries and answers duplicate checks.
type Archive interface {
	URLExists(ctx context.Context, url string) bool
	CreateTweetEntry(ctx context.Context, analysis *llm.TweetAnalysis, tweet extractor.Tweet, url string) (string, error)
	CreateWebsiteEntry(ctx context.Context, analysis *llm.WebsiteAnalysis, url string) (string, error)
}

// TweetSource resolves a tweet URL into its content.
type TweetSource interface {
	Extract(ctx context.Context, url string) extractor.Tweet
}

// Result describes the outcome of processing a single URL.
type Result struct {
	Kind      string
	URL       string
	PageID    string
	Duplicate bool
	Err       error

	Tweet         extractor.Tweet
	TweetAnalysis *llm.TweetAnalysis

	Article         extractor.Article
	WebsiteAnalysis *llm.WebsiteAnalysis
}

type Processor struct {
	tweets   TweetSource
	articles extractor.ArticleExtractor
	analyzer Analyzer
	archive  Archive
	index    *index.Index
	stats    *stats.Stats
}

// NewProcessor wires the pipeline together. The index may be nil, in which
// case every duplicate check goes to the archive.
func NewProcessor(
	tweets TweetSource,
	articles extractor.ArticleExtractor,
	analyzer Analyzer,
	archive Archive,
	idx *index.Index,
	st *stats.Stats,
) *Processor {
	return &Processor{
		tweets:   tweets,
		articles: articles,
		analyzer: analyzer,
		archive:  archive,
		index:    idx,
		stats:    st,
	}
}

// Process handles every URL found in the message text, tweets first, and
// returns one result per URL in processing order.
func (p *Processor) Process(ctx context.Context, text string) []Result {
	tweetURLs, websiteURLs := FindURLs(text)

	results := make([]Result, 0, len(tweetURLs)+len(websiteURLs))

	for _, url := range tweetURLs {
		results = append(results, p.ProcessTweetURL(ctx, url))
	}
	for _, url := range websiteURLs {
		results = append(results, p.ProcessWebsiteURL(ctx, url))
	}

	return results
}

// ProcessTweetURL archives a single tweet URL.
func (p *Processor) ProcessTweetURL(ctx context.Context, url string) Result {
	p.stats.URLProcessed()

	result := Result{Kind: KindTweet, URL: url}

	if p.isDuplicate(ctx, url) {
		slog.Info("processor: tweet already archived", "url", url)
		p.stats.DuplicateSkipped()
		result.Duplicate = true

		return result
	}

	tweet := p.tweets.Extract(ctx, url)
	if tweet.Placeholder {
		p.stats.ExtractionFailure()
	}
	result.Tweet = tweet

	analysis, err := p.analyzer.AnalyzeTweet(ctx, tweet)
	if err != nil {
		slog.Error("processor: tweet analysis failed", "url", url, "error", err)
		p.stats.AnalysisFailure()
		result.Err = fmt.Errorf("analyzing tweet: %w", err)

		return result
	}
	result.TweetAnalysis = analysis

	pageID, err := p.archive.CreateTweetEntry(ctx, analysis, tweet, url)
	if err != nil {
		p.stats.NotionFailure()
		result.Err = fmt.Errorf("saving tweet: %w", err)

		return result
	}
	result.PageID = pageID

	p.remember(ctx, url, pageID, KindTweet)
	p.stats.TweetSaved()

	return result
}

// ProcessWebsiteURL archives a single website URL.
func (p *Processor) ProcessWebsiteURL(ctx context.Context, url string) Result {
	p.stats.URLProcessed()

	result := Result{Kind: KindWebsite, URL: url}

	if p.isDuplicate(ctx, url) {
		slog.Info("processor: website already archived", "url", url)
		p.stats.DuplicateSkipped()
		result.Duplicate = true

		return result
	}

	article, err := p.articles.GetArticleFromUrl(ctx, url)
	if err != nil {
		slog.Warn("processor: website extraction failed, analyzing URL alone", "url", url, "error", err)
		p.stats.ExtractionFailure()
		article = extractor.Article{Url: url}
	}
	result.Article = article

	analysis, err := p.analyzer.AnalyzeWebsite(ctx, article, url)
	if err != nil {
		slog.Error("processor: website analysis failed", "url", url, "error", err)
		p.stats.AnalysisFailure()
		result.Err = fmt.Errorf("analyzing website: %w", err)

		return result
	}
	result.WebsiteAnalysis = analysis

	pageID, err := p.archive.CreateWebsiteEntry(ctx, analysis, url)
	if err != nil {
		p.stats.NotionFailure()
		result.Err = fmt.Errorf("saving website: %w", err)

		return result
	}
	result.PageID = pageID

	p.remember(ctx, url, pageID, KindWebsite)
	p.stats.WebsiteSaved()

	return result
}

// isDuplicate checks the local index first and falls back to the archive.
// The archive answer is authoritative since other instances may write to the
// same database.
func (p *Processor) isDuplicate(ctx context.Context, url string) bool {
	if p.index != nil && p.index.Has(ctx, url) {
		return true
	}

	if p.archive.URLExists(ctx, url) {
		if p.index != nil {
			p.index.Add(ctx, url, "", "remote")
		}

		return true
	}

	return false
}

func (p *Processor) remember(ctx context.Context, url string, pageID string, kind string) {
	if p.index != nil {
		p.index.Add(ctx, url, pageID, kind)
	}
}
