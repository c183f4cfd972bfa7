package processor

import (
	"context"
	"errors"
	"testing"

	"web-to-notion-bot/extractor"
	"web-to-notion-bot/llm"
	"web-to-notion-bot/stats"
)

func TestFindURLs(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantTweets   []string
		wantWebsites []string
	}{
		{
			name:       "single tweet",
			text:       "look at this https://x.com/golang/status/123456",
			wantTweets: []string{"https://x.com/golang/status/123456"},
		},
		{
			name:       "twitter domain",
			text:       "https://twitter.com/someone/status/789",
			wantTweets: []string{"https://twitter.com/someone/status/789"},
		},
		{
			name:         "plain website",
			text:         "check https://example.com/article out",
			wantWebsites: []string{"https://example.com/article"},
		},
		{
			name:         "mixed message",
			text:         "https://x.com/a/status/1 and https://example.com",
			wantTweets:   []string{"https://x.com/a/status/1"},
			wantWebsites: []string{"https://example.com"},
		},
		{
			name:       "tweet with query params stays a tweet",
			text:       "https://x.com/a/status/1?s=20",
			wantTweets: []string{"https://x.com/a/status/1"},
		},
		{
			name:         "twitter profile is a website",
			text:         "https://x.com/golang",
			wantWebsites: []string{"https://x.com/golang"},
		},
		{
			name:       "duplicates collapse",
			text:       "https://x.com/a/status/1 https://x.com/a/status/1",
			wantTweets: []string{"https://x.com/a/status/1"},
		},
		{
			name: "no urls",
			text: "just words here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweets, websites := FindURLs(tt.text)
			assertURLs(t, "tweets", tweets, tt.wantTweets)
			assertURLs(t, "websites", websites, tt.wantWebsites)
		})
	}
}

func assertURLs(t *testing.T, label string, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %q, want %q", label, i, got[i], want[i])
		}
	}
}

type fakeTweetSource struct {
	tweet extractor.Tweet
}

func (f *fakeTweetSource) Extract(_ context.Context, url string) extractor.Tweet {
	tweet := f.tweet
	tweet.Url = url

	return tweet
}

type fakeArticleSource struct {
	article extractor.Article
	err     error
}

func (f *fakeArticleSource) Name() string {
	return "Fake"
}

func (f *fakeArticleSource) GetArticleFromUrl(_ context.Context, url string) (extractor.Article, error) {
	return f.article, f.err
}

type fakeAnalyzer struct {
	tweetErr   error
	websiteErr error
}

func (f *fakeAnalyzer) AnalyzeTweet(_ context.Context, _ extractor.Tweet) (*llm.TweetAnalysis, error) {
	if f.tweetErr != nil {
		return nil, f.tweetErr
	}

	return &llm.TweetAnalysis{Title: "analyzed tweet", Importance: 7}, nil
}

func (f *fakeAnalyzer) AnalyzeWebsite(_ context.Context, _ extractor.Article, _ string) (*llm.WebsiteAnalysis, error) {
	if f.websiteErr != nil {
		return nil, f.websiteErr
	}

	return &llm.WebsiteAnalysis{Title: "analyzed site"}, nil
}

type fakeArchive struct {
	existing map[string]bool

	tweetEntries   []string
	websiteEntries []string
	createErr      error
}

func (f *fakeArchive) URLExists(_ context.Context, url string) bool {
	return f.existing[url]
}

func (f *fakeArchive) CreateTweetEntry(_ context.Context, _ *llm.TweetAnalysis, _ extractor.Tweet, url string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.tweetEntries = append(f.tweetEntries, url)

	return "page-tweet", nil
}

func (f *fakeArchive) CreateWebsiteEntry(_ context.Context, _ *llm.WebsiteAnalysis, url string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.websiteEntries = append(f.websiteEntries, url)

	return "page-website", nil
}

func newTestProcessor(archive *fakeArchive, analyzer *fakeAnalyzer, articles *fakeArticleSource) *Processor {
	return NewProcessor(
		&fakeTweetSource{tweet: extractor.Tweet{Content: "hi", Author: "Gopher"}},
		articles,
		analyzer,
		archive,
		nil,
		stats.NewStats(),
	)
}

func TestProcessMixedMessage(t *testing.T) {
	archive := &fakeArchive{existing: map[string]bool{}}
	p := newTestProcessor(archive, &fakeAnalyzer{}, &fakeArticleSource{article: extractor.Article{Title: "t", Text: "body"}})

	results := p.Process(context.Background(), "https://x.com/a/status/1 plus https://example.com")

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if results[0].Kind != KindTweet || results[0].PageID != "page-tweet" || results[0].Err != nil {
		t.Errorf("tweet result = %+v", results[0])
	}
	if results[1].Kind != KindWebsite || results[1].PageID != "page-website" || results[1].Err != nil {
		t.Errorf("website result = %+v", results[1])
	}

	if len(archive.tweetEntries) != 1 || len(archive.websiteEntries) != 1 {
		t.Errorf("archive writes: tweets=%v websites=%v", archive.tweetEntries, archive.websiteEntries)
	}
}

func TestProcessSkipsDuplicates(t *testing.T) {
	archive := &fakeArchive{existing: map[string]bool{"https://x.com/a/status/1": true}}
	p := newTestProcessor(archive, &fakeAnalyzer{}, &fakeArticleSource{})

	result := p.ProcessTweetURL(context.Background(), "https://x.com/a/status/1")

	if !result.Duplicate {
		t.Error("result should be marked duplicate")
	}
	if len(archive.tweetEntries) != 0 {
		t.Error("no entry should be created for a duplicate")
	}
}

func TestProcessAnalysisFailure(t *testing.T) {
	archive := &fakeArchive{existing: map[string]bool{}}
	p := newTestProcessor(archive, &fakeAnalyzer{tweetErr: errors.New("model down")}, &fakeArticleSource{})

	result := p.ProcessTweetURL(context.Background(), "https://x.com/a/status/1")

	if result.Err == nil {
		t.Fatal("expected an error result")
	}
	if len(archive.tweetEntries) != 0 {
		t.Error("no entry should be created when analysis fails")
	}
}

func TestProcessWebsiteExtractionFailureStillArchives(t *testing.T) {
	archive := &fakeArchive{existing: map[string]bool{}}
	p := newTestProcessor(archive, &fakeAnalyzer{}, &fakeArticleSource{err: errors.New("unreachable")})

	result := p.ProcessWebsiteURL(context.Background(), "https://example.com")

	if result.Err != nil {
		t.Fatalf("extraction failure should not abort archival: %v", result.Err)
	}
	if result.PageID != "page-website" {
		t.Errorf("page id = %q", result.PageID)
	}
	if result.Article.Url != "https://example.com" {
		t.Errorf("fallback article should carry the URL, got %+v", result.Article)
	}
}

func TestProcessNotionFailure(t *testing.T) {
	archive := &fakeArchive{existing: map[string]bool{}, createErr: errors.New("api error")}
	p := newTestProcessor(archive, &fakeAnalyzer{}, &fakeArticleSource{})

	result := p.ProcessTweetURL(context.Background(), "https://x.com/a/status/1")

	if result.Err == nil {
		t.Fatal("expected an error result")
	}
	if result.TweetAnalysis == nil {
		t.Error("analysis should still be attached to the result")
	}
}
