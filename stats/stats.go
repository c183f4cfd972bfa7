package stats

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

type Stats struct {
	mu sync.Mutex

	RunningSince time.Time

	GroupRequests   uint64
	PrivateRequests uint64

	URLsProcessed      uint64
	TweetsSaved        uint64
	WebsitesSaved      uint64
	DuplicatesSkipped  uint64
	ExtractionFailures uint64
	AnalysisFailures   uint64
	NotionFailures     uint64
	SetupRequests      uint64
}

func NewStats() *Stats {
	return &Stats{
		RunningSince: time.Now(),

		GroupRequests:   0,
		PrivateRequests: 0,

		URLsProcessed:      0,
		TweetsSaved:        0,
		WebsitesSaved:      0,
		DuplicatesSkipped:  0,
		ExtractionFailures: 0,
		AnalysisFailures:   0,
		NotionFailures:     0,
		SetupRequests:      0,
	}
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return json.Marshal(struct {
		Uptime string `json:"uptime"`

		GroupRequests   uint64 `json:"group_requests"`
		PrivateRequests uint64 `json:"private_requests"`

		URLsProcessed      uint64 `json:"urls_processed"`
		TweetsSaved        uint64 `json:"tweets_saved"`
		WebsitesSaved      uint64 `json:"websites_saved"`
		DuplicatesSkipped  uint64 `json:"duplicates_skipped"`
		ExtractionFailures uint64 `json:"extraction_failures"`
		AnalysisFailures   uint64 `json:"analysis_failures"`
		NotionFailures     uint64 `json:"notion_failures"`
		SetupRequests      uint64 `json:"setup_requests"`
	}{
		Uptime: time.Now().Sub(s.RunningSince).String(),

		GroupRequests:   s.GroupRequests,
		PrivateRequests: s.PrivateRequests,

		URLsProcessed:      s.URLsProcessed,
		TweetsSaved:        s.TweetsSaved,
		WebsitesSaved:      s.WebsitesSaved,
		DuplicatesSkipped:  s.DuplicatesSkipped,
		ExtractionFailures: s.ExtractionFailures,
		AnalysisFailures:   s.AnalysisFailures,
		NotionFailures:     s.NotionFailures,
		SetupRequests:      s.SetupRequests,
	})
}

func (s *Stats) String() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		sentry.CaptureException(err)

		return "{\"error\": \"cannot serialize stats\"}"
	}

	return string(data)
}

func (s *Stats) GroupRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GroupRequests++
}

func (s *Stats) PrivateRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PrivateRequests++
}

func (s *Stats) URLProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.URLsProcessed++
}

func (s *Stats) TweetSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TweetsSaved++
}

func (s *Stats) WebsiteSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WebsitesSaved++
}

func (s *Stats) DuplicateSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DuplicatesSkipped++
}

func (s *Stats) ExtractionFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ExtractionFailures++
}

func (s *Stats) AnalysisFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AnalysisFailures++
}

func (s *Stats) NotionFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NotionFailures++
}

func (s *Stats) SetupRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetupRequests++
}
