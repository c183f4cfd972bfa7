package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the root configuration structure
type Config struct {
	LLM        LLMConfig
	Notion     NotionConfig
	Extraction ExtractionConfig
	Index      IndexConfig
	Sentry     SentryConfig
	Log        LogConfig
	Bot        BotConfig
}

// LLMConfig contains configuration for the LLM connector
type LLMConfig struct {
	APIBaseURL     string
	APIToken       string
	AnalyzeModel   string
	Prompts        PromptConfig
	RequestTimeout time.Duration
}

// PromptConfig contains configuration for analysis prompts
type PromptConfig struct {
	TweetAnalysisPrompt   string
	WebsiteAnalysisPrompt string
}

// NotionConfig contains configuration for the Notion back-end
type NotionConfig struct {
	APIKey       string
	DatabaseID   string
	ParentPageID string
}

// ExtractionConfig contains configuration for the scraping fallback chain
type ExtractionConfig struct {
	Timeout         time.Duration
	NitterInstances []string
	BrowserEnabled  bool
}

// IndexConfig contains configuration for the local archive index
type IndexConfig struct {
	DBPath string
}

// SentryConfig contains configuration for Sentry error tracking
type SentryConfig struct {
	DSN string
}

// LogConfig contains configuration for logging output
type LogConfig struct {
	Level string
	File  string
}

// BotConfig contains configuration for bot settings
type BotConfig struct {
	Telegram TelegramConfig
}

// TelegramConfig contains configuration for Telegram bot
type TelegramConfig struct {
	Token string
}

var defaultNitterInstances = []string{
	"nitter.net",
	"nitter.kavin.rocks",
	"nitter.unixfox.eu",
	"nitter.42l.fr",
	"nitter.pussthecat.org",
	"nitter.nixnet.services",
}

// Load creates a new Config instance populated from environment variables
func Load() *Config {
	requestTimeout := 60
	if toStr := os.Getenv("LLM_REQUEST_TIMEOUT"); toStr != "" {
		if to, err := strconv.Atoi(toStr); err == nil {
			requestTimeout = to
		}
	}

	extractionTimeout := 30
	if toStr := os.Getenv("EXTRACTION_TIMEOUT"); toStr != "" {
		if to, err := strconv.Atoi(toStr); err == nil {
			extractionTimeout = to
		}
	}

	browserEnabled := true
	if beStr := os.Getenv("BROWSER_ENABLED"); beStr != "" {
		if be, err := strconv.ParseBool(beStr); err == nil {
			browserEnabled = be
		}
	}

	nitterInstances := defaultNitterInstances
	if niStr := os.Getenv("NITTER_INSTANCES"); niStr != "" {
		nitterInstances = nil
		for _, instance := range strings.Split(niStr, ",") {
			instance = strings.TrimSpace(instance)
			if instance != "" {
				nitterInstances = append(nitterInstances, instance)
			}
		}
	}

	defaultTweetPrompt := "Analyze this tweet:\n\n" +
		"{{.TweetInfo}}\n\n" +
		"Provide the following in JSON format:\n" +
		"1. title: A catchy title for this tweet\n" +
		"2. category: The most relevant category from the preferred list (or suggest a new one if needed)\n" +
		"3. summary: A concise summary of the tweet content\n" +
		"4. key_points: List 3-5 bullet points that capture the main ideas of the tweet\n" +
		"5. action_items: 2-3 possible follow-up actions or next steps based on the tweet's content\n" +
		"6. personal_reflection: How this tweet's content could be applied to business or personal life (1-2 sentences)\n" +
		"7. importance: Rate the importance/significance from 1-10, where 10 is extremely important\n" +
		"8. emoji: A single emoji that best represents this tweet's content or purpose\n" +
		"9. confident: Boolean indicating if you're confident in your analysis (false if working with limited information)"

	defaultWebsitePrompt := "Analyze this website:\n\n" +
		"{{.WebsiteInfo}}\n\n" +
		"Provide the following information in JSON format:\n" +
		"1. title: A clear, concise title for this website or tool\n" +
		"2. category: The most relevant category from the preferred list (or suggest a new one if needed)\n" +
		"3. type: Classify this as either \"Tool\", \"Resource\", \"App\", \"Service\", or \"Other\"\n" +
		"4. description: A detailed description of what this website or tool does and what problems it solves\n" +
		"5. use_cases: List 2-3 primary use cases for this website/tool\n" +
		"6. alternatives: If you know similar tools/websites, list 1-2 alternatives\n" +
		"7. author: The creator, company, or individual who made this tool/website (if identifiable, otherwise \"Unknown\")\n" +
		"8. emoji: A single emoji that best represents this website or tool's purpose/category"

	return &Config{
		LLM: LLMConfig{
			APIBaseURL:   os.Getenv("OPENAI_API_BASE_URL"),
			APIToken:     os.Getenv("OPENAI_API_TOKEN"),
			AnalyzeModel: getEnvOrDefault("MODEL_ANALYZE_REQUEST", "gpt-4o"),
			Prompts: PromptConfig{
				TweetAnalysisPrompt:   getEnvOrDefault("PROMPT_TWEET_ANALYSIS", defaultTweetPrompt),
				WebsiteAnalysisPrompt: getEnvOrDefault("PROMPT_WEBSITE_ANALYSIS", defaultWebsitePrompt),
			},
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
		},
		Notion: NotionConfig{
			APIKey:       os.Getenv("NOTION_API_KEY"),
			DatabaseID:   os.Getenv("NOTION_DATABASE_ID"),
			ParentPageID: os.Getenv("NOTION_PARENT_PAGE_ID"),
		},
		Extraction: ExtractionConfig{
			Timeout:         time.Duration(extractionTimeout) * time.Second,
			NitterInstances: nitterInstances,
			BrowserEnabled:  browserEnabled,
		},
		Index: IndexConfig{
			DBPath: getEnvOrDefault("INDEX_DB_PATH", "web-to-notion.db"),
		},
		Sentry: SentryConfig{
			DSN: os.Getenv("SENTRY_DSN"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Bot: BotConfig{
			Telegram: TelegramConfig{
				Token: os.Getenv("TELEGRAM_TOKEN"),
			},
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
