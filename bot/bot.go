package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"web-to-notion-bot/notion"
	"web-to-notion-bot/processor"
	"web-to-notion-bot/stats"
)

var (
	ErrGetMe          = errors.New("cannot retrieve api user")
	ErrUpdatesChannel = errors.New("cannot get updates channel")
	ErrHandlerInit    = errors.New("cannot initialize handler")
)

type BotInfo struct {
	Id       int64
	Username string
	Name     string
}

type Bot struct {
	api       *telego.Bot
	processor *processor.Processor
	archive   *notion.Client
	stats     *stats.Stats
	profile   BotInfo
}

func NewBot(
	api *telego.Bot,
	proc *processor.Processor,
	archive *notion.Client,
	st *stats.Stats,
) *Bot {
	return &Bot{
		api:       api,
		processor: proc,
		archive:   archive,
		stats:     st,
		profile:   BotInfo{0, "", ""},
	}
}

func (b *Bot) Run(ctx context.Context) error {
	botUser, err := b.api.GetMe(ctx)
	if err != nil {
		slog.Error("bot: Cannot retrieve api user", "error", err)
		sentry.CaptureException(err)

		return ErrGetMe
	}

	slog.Info("bot: Running api as", "id", botUser.ID, "username", botUser.Username, "name", botUser.FirstName, "is_bot", botUser.IsBot)
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "telegram-api",
		Message:  "Bot ID: " + strconv.FormatInt(botUser.ID, 10),
		Level:    sentry.LevelInfo,
	})

	b.profile = BotInfo{
		Id:       botUser.ID,
		Username: botUser.Username,
		Name:     botUser.FirstName,
	}

	updates, err := b.api.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		slog.Error("bot: Cannot get update channel", "error", err)
		sentry.CaptureException(err)

		return ErrUpdatesChannel
	}

	bh, err := th.NewBotHandler(b.api, updates)
	if err != nil {
		slog.Error("bot: Cannot initialize bot handler", "error", err)
		sentry.CaptureException(err)

		return ErrHandlerInit
	}

	defer bh.Stop()

	// Middlewares
	bh.Use(b.chatTypeStatsCounter)

	// Command handlers
	bh.Handle(b.startHandler, th.CommandEqual("start"), b.commandForThisBot())
	bh.Handle(b.helpHandler, th.CommandEqual("help"), b.commandForThisBot())
	bh.Handle(b.setupHandler, th.CommandEqual("setup"), b.commandForThisBot())
	bh.Handle(b.statsHandler, th.CommandEqual("stats"), b.commandForThisBot())
	bh.Handle(b.textMessageHandler, th.AnyMessageWithText())

	return bh.Start()
}

func (b *Bot) textMessageHandler(ctx *th.Context, update telego.Update) error {
	message := update.Message

	tweetURLs, websiteURLs := processor.FindURLs(message.Text)
	if len(tweetURLs)+len(websiteURLs) == 0 {
		slog.Debug("bot: /any-message", "info", "No URLs in message. Skipping.")

		return nil
	}

	slog.Info("bot: /any-message", "chat", message.Chat.ID, "tweets", len(tweetURLs), "websites", len(websiteURLs))

	chatID := tu.ID(message.Chat.ID)

	b.sendTyping(ctx, chatID)

	for _, url := range tweetURLs {
		b.processAndReport(ctx, message, url, processor.KindTweet)
	}
	for _, url := range websiteURLs {
		b.processAndReport(ctx, message, url, processor.KindWebsite)
	}

	return nil
}

// processAndReport sends a progress message for the URL, runs the pipeline
// and edits the progress message into the final report.
func (b *Bot) processAndReport(ctx *th.Context, message *telego.Message, url string, kind string) {
	if !isValidAndAllowedUrl(url) {
		slog.Warn("bot: Skipping invalid URL", "url", url)

		return
	}

	chatID := tu.ID(message.Chat.ID)

	progress, err := b.api.SendMessage(ctx, b.reply(message, tu.Message(
		chatID,
		"Processing URL: "+url+" ⏳",
	)))
	if err != nil {
		slog.Error("bot: Cannot send progress message", "error", err)
		sentry.CaptureException(err)

		return
	}

	var result processor.Result
	if kind == processor.KindTweet {
		result = b.processor.ProcessTweetURL(ctx, url)
	} else {
		result = b.processor.ProcessWebsiteURL(ctx, url)
	}

	report := FormatResult(result)

	_, err = b.api.EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: progress.MessageID,
		Text:      report,
		ParseMode: "HTML",
		LinkPreviewOptions: &telego.LinkPreviewOptions{
			IsDisabled: true,
		},
	})
	if err != nil {
		slog.Error("bot: Cannot edit progress message", "error", err)
		sentry.CaptureException(err)
	}
}

func (b *Bot) startHandler(ctx *th.Context, update telego.Update) error {
	slog.Info("bot: /start")

	chatID := tu.ID(update.Message.Chat.ID)

	b.sendTyping(ctx, chatID)

	text := "Hey!\r\n" +
		"Send me a tweet or website link and I will save it to Notion.\r\n" +
		"Archive: " + b.archive.DatabaseURL() + "\r\n" +
		"Check out /help to learn more."

	ok, problems := b.archive.CheckStructure(ctx)
	if !ok {
		text += "\r\n\r\n⚠️ The Notion database is missing required columns:\r\n- " +
			strings.Join(problems, "\r\n- ")
	}

	_, err := b.api.SendMessage(ctx, b.reply(update.Message, tu.Message(chatID, text)))
	if err != nil {
		slog.Error("bot: Cannot send a message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, update.Message)
	}

	return nil
}

func (b *Bot) helpHandler(ctx *th.Context, update telego.Update) error {
	slog.Info("bot: /help")

	chatID := tu.ID(update.Message.Chat.ID)

	b.sendTyping(ctx, chatID)

	_, err := b.api.SendMessage(ctx, b.reply(update.Message, tu.Message(
		chatID,
		"Instructions:\r\n"+
			"Send any message containing a tweet or website link and I will analyze it and save it to Notion.\r\n\r\n"+
			"/setup - Add the optional analysis columns to the Notion database\r\n"+
			"/stats - Show bot stats\r\n"+
			"/help - Show this help",
	)))
	if err != nil {
		slog.Error("bot: Cannot send a message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, update.Message)
	}

	return nil
}

func (b *Bot) setupHandler(ctx *th.Context, update telego.Update) error {
	slog.Info("bot: /setup")

	b.stats.SetupRequest()

	chatID := tu.ID(update.Message.Chat.ID)

	b.sendTyping(ctx, chatID)

	added, err := b.archive.SetupEnhancedProperties(ctx)

	var text string
	switch {
	case err != nil:
		text = "Failed to update the Notion database. Check the bot logs for details."
	case len(added) == 0:
		text = "The Notion database already has all the optional columns. Nothing to do."
	default:
		text = "Added columns to the Notion database:\r\n- " + strings.Join(added, "\r\n- ")
	}

	_, err = b.api.SendMessage(ctx, b.reply(update.Message, tu.Message(chatID, text)))
	if err != nil {
		slog.Error("bot: Cannot send a message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, update.Message)
	}

	return nil
}

func (b *Bot) statsHandler(ctx *th.Context, update telego.Update) error {
	slog.Info("bot: /stats")

	chatID := tu.ID(update.Message.Chat.ID)

	b.sendTyping(ctx, chatID)

	_, err := b.api.SendMessage(ctx, b.reply(update.Message, tu.Message(
		chatID,
		"Current bot stats:\r\n"+
			"<pre>"+b.stats.String()+"</pre>",
	)).WithParseMode("HTML"))
	if err != nil {
		slog.Error("bot: Cannot send a message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, update.Message)
	}

	return nil
}
