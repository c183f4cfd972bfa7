package notion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/jomei/notionapi"
)

// Client wraps the Notion API for a single archive database.
type Client struct {
	api        *notionapi.Client
	databaseID string
}

func NewClient(apiKey string, databaseID string) *Client {
	return &Client{
		api:        notionapi.NewClient(notionapi.Token(apiKey)),
		databaseID: FormatID(databaseID),
	}
}

// DatabaseURL returns the browser URL of the archive database.
func (c *Client) DatabaseURL() string {
	return "https://notion.so/" + strings.ReplaceAll(c.databaseID, "-", "")
}

// URLExists reports whether an entry with this URL is already in the
// database. Query failures degrade to false so a flaky Notion API never
// blocks archival; the worst case is a duplicate entry.
func (c *Client) URLExists(ctx context.Context, url string) bool {
	resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(c.databaseID), &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "URL",
			RichText: &notionapi.TextFilterCondition{
				Equals: url,
			},
		},
		PageSize: 1,
	})
	if err != nil {
		slog.Error("notion: failed to check if URL exists", "url", url, "error", err)
		sentry.CaptureException(err)

		return false
	}

	return len(resp.Results) > 0
}

// schema fetches the live database property configuration. A nil map means
// the schema could not be read; callers then skip optional properties.
func (c *Client) schema(ctx context.Context) notionapi.PropertyConfigs {
	db, err := c.api.Database.Get(ctx, notionapi.DatabaseID(c.databaseID))
	if err != nil {
		slog.Warn("notion: failed to retrieve database schema", "error", err)
		sentry.CaptureException(err)

		return nil
	}

	return db.Properties
}
