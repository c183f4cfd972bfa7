package processor

import (
	"regexp"
	"strings"
)

var (
	tweetURLRe   = regexp.MustCompile(`https?://(?:www\.)?(?:twitter\.com|x\.com)/[^/\s]+/status/\d+`)
	generalURLRe = regexp.MustCompile(`https?://(?:www\.)?[\w.-]+\.[a-zA-Z]{2,}(?:/\S*)?`)
)

// FindURLs extracts tweet URLs and general website URLs from a message.
// A URL pointing at a tweet appears only in the tweet list, even though the
// general pattern matches it too. Each list keeps first-seen order without
// duplicates.
func FindURLs(text string) (tweets []string, websites []string) {
	seen := make(map[string]bool)

	for _, match := range tweetURLRe.FindAllString(text, -1) {
		if !seen[match] {
			seen[match] = true
			tweets = append(tweets, match)
		}
	}

	for _, match := range generalURLRe.FindAllString(text, -1) {
		if seen[match] || isTweetURL(match, tweets) {
			continue
		}
		seen[match] = true
		websites = append(websites, match)
	}

	return tweets, websites
}

func isTweetURL(url string, tweets []string) bool {
	for _, tweet := range tweets {
		if strings.HasPrefix(url, tweet) {
			return true
		}
	}

	return false
}
