package extractor

import (
	"strings"
	"testing"
)

func TestParseTweetURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantUsername string
		wantID       string
		wantOk       bool
	}{
		{
			name:         "twitter.com status",
			url:          "https://twitter.com/golang/status/1234567890123456789",
			wantUsername: "golang",
			wantID:       "1234567890123456789",
			wantOk:       true,
		},
		{
			name:         "x.com status",
			url:          "https://x.com/rustlang/status/42",
			wantUsername: "rustlang",
			wantID:       "42",
			wantOk:       true,
		},
		{
			name:         "www prefix with query params",
			url:          "https://www.twitter.com/user_name/status/99?s=20&t=abc",
			wantUsername: "user_name",
			wantID:       "99",
			wantOk:       true,
		},
		{
			name:   "profile URL without status",
			url:    "https://twitter.com/golang",
			wantOk: false,
		},
		{
			name:   "unrelated URL",
			url:    "https://example.com/status/123",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, id, ok := ParseTweetURL(tt.url)
			if ok != tt.wantOk {
				t.Fatalf("ParseTweetURL(%q) ok = %v, want %v", tt.url, ok, tt.wantOk)
			}
			if !tt.wantOk {
				return
			}
			if username != tt.wantUsername {
				t.Errorf("username = %q, want %q", username, tt.wantUsername)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	short := "short text"
	if got := truncateText(short, 100); got != short {
		t.Errorf("short text should not be truncated, got %q", got)
	}

	long := strings.Repeat("я", 200)
	got := truncateText(long, 50)
	if !strings.HasSuffix(got, "... [content truncated]") {
		t.Errorf("truncated text should carry the marker, got %q", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("я", 50)) {
		t.Errorf("truncation should respect rune boundaries, got %q", got)
	}
}
