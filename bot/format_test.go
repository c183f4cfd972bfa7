package bot

import (
	"errors"
	"strings"
	"testing"

	"web-to-notion-bot/extractor"
	"web-to-notion-bot/llm"
	"web-to-notion-bot/processor"
)

func TestFormatTweetResult(t *testing.T) {
	result := processor.Result{
		Kind:   processor.KindTweet,
		URL:    "https://x.com/golang/status/1",
		PageID: "abc-def",
		Tweet: extractor.Tweet{
			Author:  "The Go Team",
			Content: "Go 1.24 is out <now>",
			Stats:   extractor.TweetStats{Replies: "12", Retweets: "34", Likes: "56"},
		},
		TweetAnalysis: &llm.TweetAnalysis{
			Title:       "Go 1.24 Release",
			Category:    "VibeCoding Help",
			Importance:  8,
			Emoji:       "🚀",
			KeyPoints:   llm.StringList{"faster builds"},
			ActionItems: llm.StringList{"upgrade <soon>"},
		},
	}

	out := FormatResult(result)

	for _, want := range []string{
		"✅ <b>Tweet saved to Notion!</b>",
		"🚀 <b>Go 1.24 Release</b>",
		"👤 The Go Team",
		"⭐ Importance: 8/10",
		"💬 12 · 🔁 34 · ❤️ 56",
		"• faster builds",
		`<a href="https://notion.so/abcdef">View in Notion</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	if !strings.Contains(out, "Go 1.24 is out &lt;now&gt;") {
		t.Errorf("tweet content should be HTML-escaped:\n%s", out)
	}
	if !strings.Contains(out, "upgrade &lt;soon&gt;") {
		t.Errorf("action items should be HTML-escaped:\n%s", out)
	}
}

func TestFormatTweetResultDefaults(t *testing.T) {
	result := processor.Result{
		Kind:          processor.KindTweet,
		URL:           "https://x.com/a/status/1",
		PageID:        "p",
		Tweet:         extractor.Tweet{Placeholder: true},
		TweetAnalysis: &llm.TweetAnalysis{Title: "Guessed"},
	}

	out := FormatResult(result)

	if !strings.Contains(out, "🐦 <b>Guessed</b>") {
		t.Errorf("missing default emoji:\n%s", out)
	}
	if !strings.Contains(out, "👤 Unknown") {
		t.Errorf("missing author fallback:\n%s", out)
	}
	if strings.Contains(out, "💬") {
		t.Errorf("stats line should be omitted without stats:\n%s", out)
	}
}

func TestFormatWebsiteResult(t *testing.T) {
	result := processor.Result{
		Kind:   processor.KindWebsite,
		URL:    "https://example.com",
		PageID: "p1",
		WebsiteAnalysis: &llm.WebsiteAnalysis{
			Title:       "Example Tool",
			Category:    "Cool Tool",
			Type:        "SaaS",
			Description: "Does useful things.",
			Author:      "Acme",
			Emoji:       "🛠",
		},
	}

	out := FormatResult(result)

	for _, want := range []string{
		"✅ <b>Website saved to Notion!</b>",
		"🛠 <b>Example Tool</b>",
		"🏷 Type: SaaS",
		"Does useful things.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatDuplicateAndError(t *testing.T) {
	dup := FormatResult(processor.Result{URL: "https://example.com", Duplicate: true})
	if !strings.Contains(dup, "already saved") {
		t.Errorf("duplicate message wrong:\n%s", dup)
	}

	failed := FormatResult(processor.Result{URL: "https://example.com", Err: errors.New("analysis <failed>")})
	if !strings.Contains(failed, "❌") || !strings.Contains(failed, "analysis &lt;failed&gt;") {
		t.Errorf("error message wrong:\n%s", failed)
	}
}

func TestPreviewText(t *testing.T) {
	long := strings.Repeat("я", contentPreviewLength+10)

	got := previewText(long)
	if len([]rune(got)) != contentPreviewLength+3 {
		t.Errorf("preview length = %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("preview should end with ellipsis: %q", got[len(got)-9:])
	}

	if previewText("short") != "short" {
		t.Error("short text should pass through")
	}
}

func TestIsValidAndAllowedUrl(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path", true},
		{"ftp://example.com", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		if got := isValidAndAllowedUrl(tt.url); got != tt.want {
			t.Errorf("isValidAndAllowedUrl(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
