package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"web-to-notion-bot/config"
	"web-to-notion-bot/extractor"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"array", `["a", "b"]`, []string{"a", "b"}},
		{"single string", `"just one point"`, []string{"just one point"}},
		{"empty string", `""`, nil},
		{"empty array", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			if err := json.Unmarshal([]byte(tt.data), &l); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if len(l) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(l), len(tt.want))
			}
			for i := range l {
				if l[i] != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, l[i], tt.want[i])
				}
			}
		})
	}
}

func TestScoreUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Score
	}{
		{"integer", `8`, 8},
		{"float", `7.5`, 7},
		{"numeric string", `"9"`, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			if err := json.Unmarshal([]byte(tt.data), &s); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if s != tt.want {
				t.Errorf("got %d, want %d", s, tt.want)
			}
		})
	}

	var s Score
	if err := json.Unmarshal([]byte(`"very important"`), &s); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestTweetAnalysisDecoding(t *testing.T) {
	payload := `{
		"title": "Go 1.24 Released",
		"category": "VibeCoding Help",
		"summary": "The Go team shipped a new release.",
		"key_points": ["generic type aliases", "smaller binaries"],
		"action_items": "Try the new release",
		"personal_reflection": "Could simplify our codebase.",
		"importance": "8",
		"emoji": "🚀",
		"confident": true
	}`

	var analysis TweetAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if analysis.Importance != 8 {
		t.Errorf("importance = %d, want 8", analysis.Importance)
	}
	if len(analysis.KeyPoints) != 2 {
		t.Errorf("key points = %v, want 2 items", analysis.KeyPoints)
	}
	if len(analysis.ActionItems) != 1 || analysis.ActionItems[0] != "Try the new release" {
		t.Errorf("action items = %v", analysis.ActionItems)
	}
	if !analysis.Confident {
		t.Error("confident should be true")
	}
}

func TestBuildTweetInfoPlaceholder(t *testing.T) {
	tweet := extractor.Tweet{
		Url:         "https://x.com/someone/status/123",
		Username:    "someone",
		ID:          "123",
		Author:      "Unknown",
		Placeholder: true,
	}

	info := buildTweetInfo(tweet)

	if !strings.Contains(info, "Content: Not available") {
		t.Errorf("placeholder tweet should report unavailable content:\n%s", info)
	}
	if !strings.Contains(info, "Username: someone") || !strings.Contains(info, "Tweet ID: 123") {
		t.Errorf("placeholder tweet should carry URL-derived hints:\n%s", info)
	}
	if !strings.Contains(info, "best guess") {
		t.Errorf("placeholder tweet should ask for a best guess:\n%s", info)
	}
}

func TestBuildTweetInfoWithContent(t *testing.T) {
	tweet := extractor.Tweet{
		Url:     "https://x.com/someone/status/123",
		Author:  "Some One",
		Content: "hello world",
		Stats:   extractor.TweetStats{Likes: "5"},
	}

	info := buildTweetInfo(tweet)

	if !strings.Contains(info, "Content: hello world") {
		t.Errorf("content missing:\n%s", info)
	}
	if strings.Contains(info, "best guess") {
		t.Errorf("extracted tweet should not carry the fallback note:\n%s", info)
	}
	if !strings.Contains(info, `"Likes":"5"`) {
		t.Errorf("stats missing:\n%s", info)
	}
}

func TestProcessTweetTemplate(t *testing.T) {
	prompts := config.PromptConfig{
		TweetAnalysisPrompt:   "Analyze: {{.TweetInfo}} End.",
		WebsiteAnalysisPrompt: "Describe: {{.WebsiteInfo}}",
	}

	p, err := NewTemplateProcessor(prompts)
	if err != nil {
		t.Fatalf("failed to build processor: %v", err)
	}

	out, err := p.ProcessTweetTemplate("TWEET DATA")
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if out != "Analyze: TWEET DATA End." {
		t.Errorf("unexpected render: %q", out)
	}

	out, err = p.ProcessWebsiteTemplate("SITE DATA")
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if out != "Describe: SITE DATA" {
		t.Errorf("unexpected render: %q", out)
	}
}
