package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGoOseExtractorTimeout(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte("<html><body><p>too late</p></body></html>"))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	e := NewGoOseExtractor(200 * time.Millisecond)

	start := time.Now()
	_, err := e.GetArticleFromUrl(context.Background(), srv.URL)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrExtractFailed) {
		t.Fatalf("expected extraction failure, got %v", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("extraction took %v, configured timeout not applied", elapsed)
	}
}
