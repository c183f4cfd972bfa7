package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"web-to-notion-bot/extractor"
)

var (
	ErrLlmBackendRequestFailed = errors.New("llm back-end request failed")
	ErrNoChoices               = errors.New("no choices in LLM response")
	ErrMalformedResponse       = errors.New("malformed LLM response")
)

const tweetSystemPrompt = "You are a helpful assistant that analyzes Twitter/X posts.\n" +
	"Preferred categories to choose from are:\n" +
	categoryGuidance +
	"\nIf you don't have enough information about the tweet, make educated guesses based on the username, tweet ID, and URL.\n" +
	"For example, if the username suggests they're a tech person or company, it's likely technology-related content.\n\n" +
	"You may suggest a new category if none of these fit well."

const websiteSystemPrompt = "You are a helpful assistant that analyzes websites and tools.\n" +
	"Preferred categories to choose from are:\n" +
	categoryGuidance +
	"\nYou may suggest a new category if none of these fit well."

const categoryGuidance = "- VibeCoding Help (for programming, coding, development related content)\n" +
	"- Cool AI (for AI, machine learning, LLMs, models, etc.)\n" +
	"- Ecommerce (for online stores, marketplaces, shopping)\n" +
	"- Business Ideas (for startups, entrepreneurship, business opportunities)\n" +
	"- Cool Tool (for productivity tools, utilities, services)\n" +
	"- App Idea (for mobile apps, application concepts)\n" +
	"- Ios Development (for iOS specific development)\n"

// Connector talks to an OpenAI-compatible chat completion back-end.
type Connector struct {
	client    *openai.Client
	model     string
	templates *TemplateProcessor
	timeout   time.Duration
}

func NewConnector(baseUrl string, token string, model string, templates *TemplateProcessor, timeout time.Duration) *Connector {
	config := openai.DefaultConfig(token)
	if baseUrl != "" {
		config.BaseURL = baseUrl
	}

	client := openai.NewClientWithConfig(config)

	return &Connector{
		client:    client,
		model:     model,
		templates: templates,
		timeout:   timeout,
	}
}

// AnalyzeTweet classifies and summarizes a tweet. The response is requested
// as a JSON object and decoded into TweetAnalysis.
func (l *Connector) AnalyzeTweet(ctx context.Context, tweet extractor.Tweet) (*TweetAnalysis, error) {
	tweetInfo := buildTweetInfo(tweet)

	userPrompt, err := l.templates.ProcessTweetTemplate(tweetInfo)
	if err != nil {
		slog.Error("llm: failed to render tweet prompt template", "error", err)

		return nil, err
	}

	slog.Info("llm: requesting tweet analysis", "url", tweet.Url)

	content, err := l.completeJSON(ctx, tweetSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var analysis TweetAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		slog.Error("llm: cannot parse tweet analysis as JSON", "error", err)

		return nil, ErrMalformedResponse
	}

	return &analysis, nil
}

// AnalyzeWebsite classifies and describes a general website from its
// extracted content.
func (l *Connector) AnalyzeWebsite(ctx context.Context, article extractor.Article, url string) (*WebsiteAnalysis, error) {
	websiteInfo := buildWebsiteInfo(article, url)

	userPrompt, err := l.templates.ProcessWebsiteTemplate(websiteInfo)
	if err != nil {
		slog.Error("llm: failed to render website prompt template", "error", err)

		return nil, err
	}

	slog.Info("llm: requesting website analysis", "url", url)

	content, err := l.completeJSON(ctx, websiteSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var analysis WebsiteAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		slog.Error("llm: cannot parse website analysis as JSON", "error", err)

		return nil, ErrMalformedResponse
	}

	return &analysis, nil
}

func (l *Connector) completeJSON(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := l.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("llm: LLM back-end request failed", "error", err)

		return "", ErrLlmBackendRequestFailed
	}

	if len(resp.Choices) < 1 {
		slog.Error("llm: LLM back-end reply has no choices")

		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}

func buildTweetInfo(tweet extractor.Tweet) string {
	var sb strings.Builder

	sb.WriteString("Tweet URL: " + tweet.Url + "\n")
	sb.WriteString("Author: " + orUnknown(tweet.Author) + "\n")
	sb.WriteString("Timestamp: " + tweet.Timestamp + "\n")

	if tweet.Placeholder {
		sb.WriteString("Content: Not available\n")
	} else {
		sb.WriteString("Content: " + tweet.Content + "\n")
	}

	if len(tweet.Images) > 0 {
		sb.WriteString(fmt.Sprintf("Images: Yes, %d images\n", len(tweet.Images)))
	} else {
		sb.WriteString("Images: No images\n")
	}

	if tweet.Stats != (extractor.TweetStats{}) {
		stats, err := json.Marshal(tweet.Stats)
		if err == nil {
			sb.WriteString("Stats: " + string(stats) + "\n")
		}
	} else {
		sb.WriteString("Stats: Not available\n")
	}

	if tweet.Placeholder {
		sb.WriteString("\nNote: The tweet content could not be directly extracted.\n")
		sb.WriteString("Username: " + orUnknown(tweet.Username) + "\n")
		sb.WriteString("Tweet ID: " + orUnknown(tweet.ID) + "\n\n")
		sb.WriteString("Please make your best guess about the content based on the URL, username, and any other available information.\n")
	}

	return sb.String()
}

func buildWebsiteInfo(article extractor.Article, url string) string {
	var sb strings.Builder

	sb.WriteString("Website URL: " + url + "\n")
	sb.WriteString("Title: " + article.Title + "\n")
	sb.WriteString("Description: " + article.Description + "\n\n")
	sb.WriteString("Content Preview:\n")

	preview := article.Text
	if runes := []rune(preview); len(runes) > 4000 {
		preview = string(runes[:4000])
	}
	sb.WriteString(preview + "\n")

	return sb.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
