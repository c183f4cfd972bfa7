package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	mobileUserAgent  = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	selectorProbeTimeout = 2 * time.Second
)

// Mobile rendering of Twitter tends to be less restricted than desktop, so
// the selector lists cover both layouts.
var tweetContentSelectors = []string{
	`article div[data-testid="tweetText"]`,
	`article div[lang]`,
	`[data-testid="tweetText"]`,
	`.tweet-text`,
	`div[data-testid="tweet"] div[lang]`,
	`div[data-testid="tweet"] div[dir="auto"]`,
}

var tweetAuthorSelectors = []string{
	`[data-testid="User-Name"] a[role="link"] span`,
	`[data-testid="User-Name"] span`,
	`[data-testid="tweetAuthor"]`,
	`h2[role="heading"]`,
}

var websiteContentSelectors = []string{
	`main`,
	`article`,
	`#content`,
	`.content`,
	`body`,
}

// BrowserExtractor renders pages in headless Chromium via rod. The browser
// is launched lazily on first use and reused afterwards.
type BrowserExtractor struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
}

func NewBrowserExtractor(timeout time.Duration) *BrowserExtractor {
	return &BrowserExtractor{timeout: timeout}
}

func (e *BrowserExtractor) Name() string {
	return "browser"
}

func (e *BrowserExtractor) connect() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		return e.browser, nil
	}

	slog.Info("browser-extractor: launching headless browser")

	controlURL, err := launcher.New().
		Headless(true).
		NoSandbox(true).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	e.browser = browser

	return browser, nil
}

// Close shuts the shared browser down. Safe to call when it was never started.
func (e *BrowserExtractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser == nil {
		return nil
	}

	err := e.browser.Close()
	e.browser = nil

	return err
}

func (e *BrowserExtractor) openPage(ctx context.Context, url string, userAgent string, mobile bool) (*rod.Page, error) {
	browser, err := e.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	page = page.Context(ctx).Timeout(e.timeout)

	if err := (proto.EmulationSetUserAgentOverride{UserAgent: userAgent}).Call(page); err != nil {
		slog.Warn("browser-extractor: failed to set user agent", "error", err)
	}

	metrics := proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}
	if mobile {
		metrics = proto.EmulationSetDeviceMetricsOverride{
			Width:             390,
			Height:            844,
			DeviceScaleFactor: 2.0,
			Mobile:            true,
		}
	}
	if err := metrics.Call(page); err != nil {
		slog.Warn("browser-extractor: failed to set viewport", "error", err)
	}

	if err := page.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("wait load: %w", err)
	}

	return page, nil
}

// ExtractTweet renders a tweet page with mobile emulation and probes known
// selectors for its content.
func (e *BrowserExtractor) ExtractTweet(ctx context.Context, url string) (Tweet, error) {
	slog.Info("browser-extractor: requested tweet extraction", "url", url)

	page, err := e.openPage(ctx, url, mobileUserAgent, true)
	if err != nil {
		slog.Error("browser-extractor: failed to open tweet page", "url", url, "error", err)
		sentry.CaptureException(err)

		return Tweet{}, ErrExtractFailed
	}
	defer func() { _ = page.Close() }()

	// Twitter shows a login modal over the tweet. Escape dismisses it in the
	// mobile layout.
	if err := page.Keyboard.Press(input.Escape); err != nil {
		slog.Debug("browser-extractor: failed to press escape", "error", err)
	}

	content := firstElementText(page, tweetContentSelectors)
	if content == "" {
		slog.Warn("browser-extractor: no tweet content found", "url", url)

		return Tweet{}, ErrExtractFailed
	}

	author := firstElementText(page, tweetAuthorSelectors)
	if author == "" {
		author = "Unknown"
	}

	timestamp := ""
	if el, err := page.Timeout(selectorProbeTimeout).Element("time"); err == nil {
		if attr, err := el.Attribute("datetime"); err == nil && attr != nil {
			timestamp = *attr
		} else if text, err := el.Text(); err == nil {
			timestamp = cleanText(text)
		}
	}

	username, id, _ := ParseTweetURL(url)

	slog.Info("browser-extractor: tweet extracted", "url", url, "author", author)

	return Tweet{
		Content:   content,
		Author:    author,
		Timestamp: timestamp,
		Username:  username,
		ID:        id,
		Url:       url,
	}, nil
}

func (e *BrowserExtractor) GetArticleFromUrl(ctx context.Context, url string) (Article, error) {
	slog.Info("browser-extractor: requested article extraction", "url", url)

	page, err := e.openPage(ctx, url, desktopUserAgent, false)
	if err != nil {
		slog.Error("browser-extractor: failed to open page", "url", url, "error", err)
		sentry.CaptureException(err)

		return Article{}, ErrExtractFailed
	}
	defer func() { _ = page.Close() }()

	title := ""
	if info, err := page.Info(); err == nil {
		title = info.Title
	}

	description := ""
	if el, err := page.Timeout(selectorProbeTimeout).Element(`meta[name="description"]`); err == nil {
		if attr, err := el.Attribute("content"); err == nil && attr != nil {
			description = *attr
		}
	}

	content := firstElementText(page, websiteContentSelectors)
	if content == "" {
		slog.Warn("browser-extractor: no content found", "url", url)

		return Article{}, ErrExtractFailed
	}

	return Article{
		Title:       title,
		Description: description,
		Text:        content,
		Url:         url,
	}, nil
}

func firstElementText(page *rod.Page, selectors []string) string {
	for _, sel := range selectors {
		el, err := page.Timeout(selectorProbeTimeout).Element(sel)
		if err != nil {
			continue
		}

		text, err := el.Text()
		if err != nil {
			continue
		}

		if cleaned := cleanText(text); cleaned != "" {
			slog.Debug("browser-extractor: content found", "selector", sel)
			return cleaned
		}
	}

	return ""
}

var _ ArticleExtractor = (*BrowserExtractor)(nil)
