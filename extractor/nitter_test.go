package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const nitterTweetPage = `
<html><body>
<div class="main-tweet">
  <a class="fullname" href="/golang">The Go Programming Language</a>
  <div class="tweet-content media-body">Go 1.24 is released! It brings generic type aliases and smaller binaries.</div>
  <span class="tweet-date"><a href="/golang/status/1" title="Feb 11, 2025">Feb 11, 2025</a></span>
  <div class="attachment image">
    <a class="still-image" href="/pic/1" src="/pic/media%2Fabc.jpg"></a>
  </div>
  <div class="tweet-stats">
    <span class="tweet-stat"><div class="icon-container"><span class="icon-comment"></span> 128 replies</div></span>
    <span class="tweet-stat"><div class="icon-container"><span class="icon-retweet"></span> 512 retweets</div></span>
    <span class="tweet-stat"><div class="icon-container"><span class="icon-heart"></span> 2048 likes</div></span>
  </div>
</div>
</body></html>`

func TestTweetFromNitterDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(nitterTweetPage))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	tweet, ok := tweetFromNitterDocument(doc)
	if !ok {
		t.Fatal("expected tweet to be found in fixture")
	}

	if !strings.HasPrefix(tweet.Content, "Go 1.24 is released!") {
		t.Errorf("unexpected content: %q", tweet.Content)
	}
	if tweet.Author != "The Go Programming Language" {
		t.Errorf("unexpected author: %q", tweet.Author)
	}
	if tweet.Timestamp != "Feb 11, 2025" {
		t.Errorf("unexpected timestamp: %q", tweet.Timestamp)
	}
	if len(tweet.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(tweet.Images))
	}
	if tweet.Stats.Replies != "128" || tweet.Stats.Retweets != "512" || tweet.Stats.Likes != "2048" {
		t.Errorf("unexpected stats: %+v", tweet.Stats)
	}
}

func TestTweetFromNitterDocumentEmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>Instance rate limited</p></body></html>"))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	if _, ok := tweetFromNitterDocument(doc); ok {
		t.Fatal("expected no tweet on an empty page")
	}
}
