package notion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/jomei/notionapi"

	"web-to-notion-bot/extractor"
	"web-to-notion-bot/llm"
)

const maxSummaryLength = 2000

// DefaultTweetEmoji and DefaultWebsiteEmoji are used when the analysis
// did not suggest one.
const (
	DefaultTweetEmoji   = "🐦"
	DefaultWebsiteEmoji = "🔗"
)

// CreateTweetEntry persists a tweet analysis as a new page in the archive
// database and returns the created page ID.
func (c *Client) CreateTweetEntry(ctx context.Context, analysis *llm.TweetAnalysis, tweet extractor.Tweet, url string) (string, error) {
	schema := c.schema(ctx)

	properties := buildTweetProperties(analysis, url, schema)
	blocks := buildTweetBlocks(analysis, tweet, url)

	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(c.databaseID),
		},
		Properties: properties,
		Children:   blocks,
	})
	if err != nil {
		slog.Error("notion: failed to create tweet entry", "url", url, "error", err)
		sentry.CaptureException(err)

		return "", err
	}

	slog.Info("notion: created tweet entry", "url", url, "page", page.URL)

	return string(page.ID), nil
}

// CreateWebsiteEntry persists a website analysis as a new page in the
// archive database and returns the created page ID.
func (c *Client) CreateWebsiteEntry(ctx context.Context, analysis *llm.WebsiteAnalysis, url string) (string, error) {
	schema := c.schema(ctx)

	properties := buildWebsiteProperties(analysis, url, schema)
	blocks := buildWebsiteBlocks(analysis, url)

	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(c.databaseID),
		},
		Properties: properties,
		Children:   blocks,
	})
	if err != nil {
		slog.Error("notion: failed to create website entry", "url", url, "error", err)
		sentry.CaptureException(err)

		return "", err
	}

	slog.Info("notion: created website entry", "url", url, "page", page.URL)

	return string(page.ID), nil
}

func buildTweetProperties(analysis *llm.TweetAnalysis, url string, schema notionapi.PropertyConfigs) notionapi.Properties {
	emoji := analysis.Emoji
	if emoji == "" {
		emoji = DefaultTweetEmoji
	}

	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Title: richText(emoji + " " + analysis.Title),
		},
		"URL": notionapi.URLProperty{
			URL: url,
		},
		"Category": notionapi.SelectProperty{
			Select: notionapi.Option{Name: MapCategory(analysis.Category)},
		},
		"Summary": notionapi.RichTextProperty{
			RichText: richText(capLength(analysis.Summary, maxSummaryLength)),
		},
		"Importance": notionapi.NumberProperty{
			Number: float64(analysis.Importance),
		},
	}

	// Enhanced properties only when the live schema has them.
	if hasProperty(schema, "Key Points") && len(analysis.KeyPoints) > 0 {
		properties["Key Points"] = notionapi.RichTextProperty{
			RichText: richText(bulletedText(analysis.KeyPoints)),
		}
	}
	if hasProperty(schema, "Action Items") && len(analysis.ActionItems) > 0 {
		properties["Action Items"] = notionapi.RichTextProperty{
			RichText: richText(bulletedText(analysis.ActionItems)),
		}
	}
	if hasProperty(schema, "Personal Reflection") && analysis.PersonalReflection != "" {
		properties["Personal Reflection"] = notionapi.RichTextProperty{
			RichText: richText(analysis.PersonalReflection),
		}
	}

	addEmojiProperty(properties, schema, emoji)

	return properties
}

func buildTweetBlocks(analysis *llm.TweetAnalysis, tweet extractor.Tweet, url string) []notionapi.Block {
	content := tweet.Content
	if content == "" {
		content = "Content not available"
	}

	blocks := []notionapi.Block{
		headingBlock2("Tweet Content"),
		boldParagraphBlock("Author: " + orUnknown(tweet.Author)),
		paragraphBlock(content),
	}

	if len(analysis.KeyPoints) > 0 {
		blocks = append(blocks, headingBlock3("Key Points"))
		for _, point := range analysis.KeyPoints {
			blocks = append(blocks, bulletBlock(point))
		}
	}

	if len(analysis.ActionItems) > 0 {
		blocks = append(blocks, headingBlock3("Action Items"))
		for _, item := range analysis.ActionItems {
			blocks = append(blocks, bulletBlock(item))
		}
	}

	if analysis.PersonalReflection != "" {
		blocks = append(blocks,
			headingBlock3("Personal Reflection"),
			paragraphBlock(analysis.PersonalReflection),
		)
	}

	blocks = append(blocks, originalURLBlock(url))

	return blocks
}

func buildWebsiteProperties(analysis *llm.WebsiteAnalysis, url string, schema notionapi.PropertyConfigs) notionapi.Properties {
	emoji := analysis.Emoji
	if emoji == "" {
		emoji = DefaultWebsiteEmoji
	}

	title := analysis.Title
	if title == "" {
		title = "Unknown Website"
	}

	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Title: richText(emoji + " " + title),
		},
		"URL": notionapi.URLProperty{
			URL: url,
		},
		"Category": notionapi.SelectProperty{
			Select: notionapi.Option{Name: MapCategory(analysis.Category)},
		},
		// Websites do not get an importance rating from the analysis.
		"Importance": notionapi.NumberProperty{
			Number: 5,
		},
		"Summary": notionapi.RichTextProperty{
			RichText: richText(capLength(analysis.Description, maxSummaryLength)),
		},
	}

	// The Author column type varies between databases; match whatever the
	// live schema uses. People-typed columns are skipped since the analysis
	// has no Notion user to reference.
	if prop, ok := lookupProperty(schema, "Author"); ok {
		author := orUnknown(analysis.Author)
		switch prop.GetType() {
		case notionapi.PropertyConfigTypeRichText:
			properties["Author"] = notionapi.RichTextProperty{
				RichText: richText(author),
			}
		case notionapi.PropertyConfigTypeSelect:
			properties["Author"] = notionapi.SelectProperty{
				Select: notionapi.Option{Name: author},
			}
		case notionapi.PropertyConfigTypePeople:
		default:
			slog.Warn("notion: Author property has unsupported type", "type", prop.GetType())
		}
	}

	addEmojiProperty(properties, schema, emoji)

	return properties
}

func buildWebsiteBlocks(analysis *llm.WebsiteAnalysis, url string) []notionapi.Block {
	websiteType := analysis.Type
	if websiteType == "" {
		websiteType = "Resource"
	}

	var details strings.Builder
	details.WriteString(analysis.Description)
	details.WriteString("\n\nType: " + websiteType)
	if len(analysis.UseCases) > 0 {
		details.WriteString("\n\nUse Cases:\n" + dashedText(analysis.UseCases))
	}
	if len(analysis.Alternatives) > 0 {
		details.WriteString("\n\nAlternatives:\n" + dashedText(analysis.Alternatives))
	}

	return []notionapi.Block{
		headingBlock2("Website Details"),
		paragraphBlock(details.String()),
		boldParagraphBlock("Created by: " + orUnknown(analysis.Author)),
		originalURLBlock(url),
	}
}

func addEmojiProperty(properties notionapi.Properties, schema notionapi.PropertyConfigs, emoji string) {
	prop, ok := lookupProperty(schema, "Emoji")
	if !ok {
		return
	}

	switch prop.GetType() {
	case notionapi.PropertyConfigTypeRichText:
		properties["Emoji"] = notionapi.RichTextProperty{
			RichText: richText(emoji),
		}
	case notionapi.PropertyConfigTypeSelect:
		properties["Emoji"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: emoji},
		}
	}
}

func hasProperty(schema notionapi.PropertyConfigs, name string) bool {
	_, ok := lookupProperty(schema, name)
	return ok
}

func lookupProperty(schema notionapi.PropertyConfigs, name string) (notionapi.PropertyConfig, bool) {
	if schema == nil {
		return nil, false
	}

	prop, ok := schema[name]
	return prop, ok
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: content},
		},
	}
}

func paragraphBlock(content string) notionapi.Block {
	return notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: richText(content),
		},
	}
}

func boldParagraphBlock(content string) notionapi.Block {
	return notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{
				{
					Type:        notionapi.ObjectTypeText,
					Text:        &notionapi.Text{Content: content},
					Annotations: &notionapi.Annotations{Bold: true},
				},
			},
		},
	}
}

func headingBlock2(content string) notionapi.Block {
	return notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading2,
		},
		Heading2: notionapi.Heading{
			RichText: richText(content),
		},
	}
}

func headingBlock3(content string) notionapi.Block {
	return notionapi.Heading3Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading3,
		},
		Heading3: notionapi.Heading{
			RichText: richText(content),
		},
	}
}

func bulletBlock(content string) notionapi.Block {
	return notionapi.BulletedListItemBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeBulletedListItem,
		},
		BulletedListItem: notionapi.ListItem{
			RichText: richText(content),
		},
	}
}

func originalURLBlock(url string) notionapi.Block {
	return notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{
				{
					Type:        notionapi.ObjectTypeText,
					Text:        &notionapi.Text{Content: "Original URL: "},
					Annotations: &notionapi.Annotations{Bold: true},
				},
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: url,
						Link:    &notionapi.Link{Url: url},
					},
				},
			},
		},
	}
}

func bulletedText(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("\n• " + item)
	}
	return sb.String()
}

func dashedText(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func capLength(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
