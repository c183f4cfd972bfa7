package bot

import (
	"fmt"
	"html"
	"strings"

	"web-to-notion-bot/extractor"
	"web-to-notion-bot/processor"
)

const contentPreviewLength = 300

// FormatResult renders a processing result as a Telegram HTML message.
func FormatResult(result processor.Result) string {
	switch {
	case result.Duplicate:
		return "ℹ️ This URL is already saved in Notion:\n" + html.EscapeString(result.URL)
	case result.Err != nil:
		return "❌ Failed to process " + html.EscapeString(result.URL) + "\n" + html.EscapeString(result.Err.Error())
	case result.Kind == processor.KindTweet:
		return formatTweetResult(result)
	default:
		return formatWebsiteResult(result)
	}
}

func formatTweetResult(result processor.Result) string {
	analysis := result.TweetAnalysis
	tweet := result.Tweet

	var sb strings.Builder

	sb.WriteString("✅ <b>Tweet saved to Notion!</b>\n\n")

	emoji := analysis.Emoji
	if emoji == "" {
		emoji = "🐦"
	}
	sb.WriteString(emoji + " <b>" + html.EscapeString(analysis.Title) + "</b>\n")
	sb.WriteString("👤 " + html.EscapeString(authorOrUnknown(tweet.Author)) + "\n")
	sb.WriteString("📁 Category: " + html.EscapeString(analysis.Category) + "\n")
	sb.WriteString(fmt.Sprintf("⭐ Importance: %d/10\n", analysis.Importance))

	if tweet.Stats != (extractor.TweetStats{}) {
		sb.WriteString("💬 " + statOrZero(tweet.Stats.Replies) +
			" · 🔁 " + statOrZero(tweet.Stats.Retweets) +
			" · ❤️ " + statOrZero(tweet.Stats.Likes) + "\n")
	}

	if analysis.Summary != "" {
		sb.WriteString("\n" + html.EscapeString(analysis.Summary) + "\n")
	}

	if tweet.Content != "" {
		sb.WriteString("\n<i>" + html.EscapeString(previewText(tweet.Content)) + "</i>\n")
	}

	if len(analysis.KeyPoints) > 0 {
		sb.WriteString("\n🔑 <b>Key Points:</b>\n")
		for _, point := range analysis.KeyPoints {
			sb.WriteString("• " + html.EscapeString(point) + "\n")
		}
	}

	if len(analysis.ActionItems) > 0 {
		sb.WriteString("\n📋 <b>Action Items:</b>\n")
		for _, item := range analysis.ActionItems {
			sb.WriteString("• " + html.EscapeString(item) + "\n")
		}
	}

	if analysis.PersonalReflection != "" {
		sb.WriteString("\n💭 " + html.EscapeString(analysis.PersonalReflection) + "\n")
	}

	sb.WriteString("\n" + notionLink(result.PageID))

	return sb.String()
}

func formatWebsiteResult(result processor.Result) string {
	analysis := result.WebsiteAnalysis

	var sb strings.Builder

	sb.WriteString("✅ <b>Website saved to Notion!</b>\n\n")

	emoji := analysis.Emoji
	if emoji == "" {
		emoji = "🔗"
	}
	sb.WriteString(emoji + " <b>" + html.EscapeString(analysis.Title) + "</b>\n")
	sb.WriteString("👤 " + html.EscapeString(authorOrUnknown(analysis.Author)) + "\n")
	sb.WriteString("📁 Category: " + html.EscapeString(analysis.Category) + "\n")

	if analysis.Type != "" {
		sb.WriteString("🏷 Type: " + html.EscapeString(analysis.Type) + "\n")
	}

	if analysis.Description != "" {
		sb.WriteString("\n" + html.EscapeString(previewText(analysis.Description)) + "\n")
	}

	sb.WriteString("\n" + notionLink(result.PageID))

	return sb.String()
}

func notionLink(pageID string) string {
	pageURL := "https://notion.so/" + strings.ReplaceAll(pageID, "-", "")

	return `<a href="` + pageURL + `">View in Notion</a>`
}

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= contentPreviewLength {
		return text
	}

	return string(runes[:contentPreviewLength]) + "..."
}

func authorOrUnknown(author string) string {
	if author == "" {
		return "Unknown"
	}

	return author
}

func statOrZero(stat string) string {
	if stat == "" {
		return "0"
	}

	return stat
}
