package llm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// TweetAnalysis is the structured result of a tweet classification request.
type TweetAnalysis struct {
	Title              string     `json:"title"`
	Category           string     `json:"category"`
	Summary            string     `json:"summary"`
	KeyPoints          StringList `json:"key_points"`
	ActionItems        StringList `json:"action_items"`
	PersonalReflection string     `json:"personal_reflection"`
	Importance         Score      `json:"importance"`
	Emoji              string     `json:"emoji"`
	Confident          bool       `json:"confident"`
}

// WebsiteAnalysis is the structured result of a website classification request.
type WebsiteAnalysis struct {
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	UseCases     StringList `json:"use_cases"`
	Alternatives StringList `json:"alternatives"`
	Author       string     `json:"author"`
	Emoji        string     `json:"emoji"`
}

// StringList accepts both a JSON array of strings and a single string; the
// model is inconsistent about which one it emits for list-shaped fields.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	if strings.TrimSpace(single) == "" {
		*l = nil
		return nil
	}

	*l = StringList{single}
	return nil
}

// Score accepts a JSON number or a numeric string. Fractional values are
// rounded down.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = Score(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return err
	}

	*s = Score(parsed)
	return nil
}
