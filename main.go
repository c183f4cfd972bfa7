package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	tg "github.com/mymmrac/telego"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"web-to-notion-bot/bot"
	"web-to-notion-bot/config"
	"web-to-notion-bot/extractor"
	"web-to-notion-bot/index"
	"web-to-notion-bot/llm"
	"web-to-notion-bot/notion"
	"web-to-notion-bot/processor"
	"web-to-notion-bot/stats"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("main: no .env file loaded", "error", err)
	}

	cfg := config.Load()

	setupLogging(cfg.Log)

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn: cfg.Sentry.DSN,
		})
		if err != nil {
			slog.Error("main: sentry initialization failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := &cli.App{
		Name:  "web-to-notion-bot",
		Usage: "Archive tweets and websites from chat messages into a Notion database",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "bot",
				Usage: "run as a Telegram bot",
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "process a single message text and exit",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "process message text from a file and exit",
			},
			&cli.BoolFlag{
				Name:  "setup-db",
				Usage: "create a new archive database under NOTION_PARENT_PAGE_ID and exit",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("main: finished with an error", "error", err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(c *cli.Context, cfg *config.Config) error {
	modes := 0
	for _, set := range []bool{c.Bool("bot"), c.String("message") != "", c.String("file") != "", c.Bool("setup-db")} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return cli.Exit("exactly one of --bot, --message, --file or --setup-db is required", 2)
	}

	if cfg.Notion.APIKey == "" {
		return cli.Exit("NOTION_API_KEY is required", 2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if c.Bool("setup-db") {
		return runSetupDB(ctx, cfg)
	}

	if cfg.Notion.DatabaseID == "" {
		return cli.Exit("NOTION_DATABASE_ID is required", 2)
	}

	proc, archive, st, cleanup := buildPipeline(cfg)
	defer cleanup()

	switch {
	case c.Bool("bot"):
		return runBot(ctx, cfg, proc, archive, st)
	case c.String("message") != "":
		return runOnce(ctx, proc, c.String("message"))
	default:
		data, err := os.ReadFile(c.String("file"))
		if err != nil {
			return fmt.Errorf("reading message file: %w", err)
		}

		return runOnce(ctx, proc, string(data))
	}
}

// buildPipeline wires the extraction, analysis and persistence components
// together. The returned cleanup closes the browser and the local index.
func buildPipeline(cfg *config.Config) (*processor.Processor, *notion.Client, *stats.Stats, func()) {
	var browser *extractor.BrowserExtractor
	if cfg.Extraction.BrowserEnabled {
		browser = extractor.NewBrowserExtractor(cfg.Extraction.Timeout)
	}

	nitter := extractor.NewNitterExtractor(cfg.Extraction.NitterInstances, cfg.Extraction.Timeout)
	direct := extractor.NewDirectExtractor(cfg.Extraction.Timeout)
	tweets := extractor.NewTweetExtractor(browser, nitter, direct)

	articleBackends := []extractor.ArticleExtractor{
		extractor.NewReadabilityExtractor(cfg.Extraction.Timeout),
		extractor.NewGoOseExtractor(cfg.Extraction.Timeout),
	}
	if browser != nil {
		articleBackends = append(articleBackends, browser)
	}
	articles := extractor.NewArticleChain(articleBackends...)

	templates, err := llm.NewTemplateProcessor(cfg.LLM.Prompts)
	if err != nil {
		slog.Error("main: invalid prompt templates, using defaults failed", "error", err)
		os.Exit(1)
	}

	llmc := llm.NewConnector(cfg.LLM.APIBaseURL, cfg.LLM.APIToken, cfg.LLM.AnalyzeModel, templates, cfg.LLM.RequestTimeout)

	archive := notion.NewClient(cfg.Notion.APIKey, cfg.Notion.DatabaseID)

	idx, err := index.Open(cfg.Index.DBPath)
	if err != nil {
		slog.Warn("main: cannot open local index, duplicate checks go to Notion only", "error", err)
		idx = nil
	}

	st := stats.NewStats()

	proc := processor.NewProcessor(tweets, articles, llmc, archive, idx, st)

	cleanup := func() {
		if browser != nil {
			if err := browser.Close(); err != nil {
				slog.Warn("main: browser shutdown failed", "error", err)
			}
		}
		if idx != nil {
			if err := idx.Close(); err != nil {
				slog.Warn("main: index shutdown failed", "error", err)
			}
		}
	}

	return proc, archive, st, cleanup
}

func runBot(ctx context.Context, cfg *config.Config, proc *processor.Processor, archive *notion.Client, st *stats.Stats) error {
	if cfg.Bot.Telegram.Token == "" {
		return cli.Exit("TELEGRAM_TOKEN is required for --bot", 2)
	}

	api, err := tg.NewBot(cfg.Bot.Telegram.Token, tg.WithLogger(bot.NewLogger("telego: ")))
	if err != nil {
		return fmt.Errorf("creating telegram api client: %w", err)
	}

	botService := bot.NewBot(api, proc, archive, st)

	return botService.Run(ctx)
}

func runOnce(ctx context.Context, proc *processor.Processor, text string) error {
	results := proc.Process(ctx, text)

	if len(results) == 0 {
		fmt.Println("No URLs found in the message.")

		return nil
	}

	failures := 0
	for _, result := range results {
		switch {
		case result.Duplicate:
			fmt.Printf("skipped  %s (already archived)\n", result.URL)
		case result.Err != nil:
			fmt.Printf("failed   %s: %v\n", result.URL, result.Err)
			failures++
		default:
			fmt.Printf("archived %s -> https://notion.so/%s\n", result.URL, strings.ReplaceAll(result.PageID, "-", ""))
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d URLs failed", failures, len(results))
	}

	return nil
}

func runSetupDB(ctx context.Context, cfg *config.Config) error {
	if cfg.Notion.ParentPageID == "" {
		return cli.Exit("NOTION_PARENT_PAGE_ID is required for --setup-db", 2)
	}

	client := notion.NewClient(cfg.Notion.APIKey, "")

	databaseID, err := client.CreateDatabase(ctx, cfg.Notion.ParentPageID)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}

	fmt.Println("Created archive database.")
	fmt.Println("Set NOTION_DATABASE_ID=" + databaseID)

	return nil
}

func setupLogging(cfg config.LogConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.File != "" {
		var w io.Writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}
