package notion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/jomei/notionapi"
)

// requiredProperties are the columns archival cannot work without, mapped to
// the property type each must have.
var requiredProperties = map[string]notionapi.PropertyConfigType{
	"Title":      notionapi.PropertyConfigTypeTitle,
	"URL":        notionapi.PropertyConfigTypeURL,
	"Category":   notionapi.PropertyConfigTypeSelect,
	"Summary":    notionapi.PropertyConfigTypeRichText,
	"Importance": notionapi.PropertyConfigTypeNumber,
}

// recommendedProperties are optional columns that enrich entries when
// present. Missing ones are reported but never block archival.
var recommendedProperties = []string{
	"Key Points",
	"Action Items",
	"Personal Reflection",
	"Author",
	"Emoji",
}

// CheckStructure validates the archive database against the expected layout.
// It returns whether the required columns are all present with the right
// types, plus a list of human-readable problems covering both required and
// recommended columns.
func (c *Client) CheckStructure(ctx context.Context) (bool, []string) {
	db, err := c.api.Database.Get(ctx, notionapi.DatabaseID(c.databaseID))
	if err != nil {
		slog.Error("notion: failed to retrieve database for structure check", "error", err)
		sentry.CaptureException(err)

		return false, []string{fmt.Sprintf("Could not retrieve database: %v", err)}
	}

	var problems []string
	ok := true

	for name, wantType := range requiredProperties {
		prop, exists := db.Properties[name]
		if !exists {
			problems = append(problems, fmt.Sprintf("Missing required property %q (%s)", name, wantType))
			ok = false

			continue
		}
		if prop.GetType() != wantType {
			problems = append(problems, fmt.Sprintf("Property %q has type %s, expected %s", name, prop.GetType(), wantType))
			ok = false
		}
	}

	for _, name := range recommendedProperties {
		if _, exists := db.Properties[name]; !exists {
			problems = append(problems, fmt.Sprintf("Missing recommended property %q", name))
		}
	}

	slog.Info("notion: database structure checked", "ok", ok, "problems", len(problems))

	return ok, problems
}

// SetupEnhancedProperties adds the recommended columns that are missing from
// the archive database and returns the names of the ones it added. The
// Author column is created as a people property only when the database
// already uses people columns, otherwise as rich text.
func (c *Client) SetupEnhancedProperties(ctx context.Context) ([]string, error) {
	db, err := c.api.Database.Get(ctx, notionapi.DatabaseID(c.databaseID))
	if err != nil {
		slog.Error("notion: failed to retrieve database for setup", "error", err)
		sentry.CaptureException(err)

		return nil, err
	}

	updates := notionapi.PropertyConfigs{}

	richTextConfig := notionapi.RichTextPropertyConfig{
		Type:     notionapi.PropertyConfigTypeRichText,
		RichText: struct{}{},
	}

	for _, name := range []string{"Key Points", "Action Items", "Personal Reflection", "Emoji"} {
		if _, exists := db.Properties[name]; !exists {
			updates[name] = richTextConfig
		}
	}

	if _, exists := db.Properties["Author"]; !exists {
		if usesPeopleProperties(db.Properties) {
			updates["Author"] = notionapi.PeoplePropertyConfig{
				Type:   notionapi.PropertyConfigTypePeople,
				People: struct{}{},
			}
		} else {
			updates["Author"] = richTextConfig
		}
	}

	if len(updates) == 0 {
		slog.Info("notion: all enhanced properties already present")

		return nil, nil
	}

	_, err = c.api.Database.Update(ctx, notionapi.DatabaseID(c.databaseID), &notionapi.DatabaseUpdateRequest{
		Properties: updates,
	})
	if err != nil {
		slog.Error("notion: failed to add enhanced properties", "error", err)
		sentry.CaptureException(err)

		return nil, err
	}

	added := make([]string, 0, len(updates))
	for name := range updates {
		added = append(added, name)
	}

	slog.Info("notion: added enhanced properties", "properties", added)

	return added, nil
}

func usesPeopleProperties(props notionapi.PropertyConfigs) bool {
	for _, prop := range props {
		if prop.GetType() == notionapi.PropertyConfigTypePeople {
			return true
		}
	}

	return false
}

// CreateDatabase creates a fresh archive database under the given parent
// page and returns the new database ID. The client keeps using its
// configured database; callers are expected to update their configuration
// with the returned ID.
func (c *Client) CreateDatabase(ctx context.Context, parentPageID string) (string, error) {
	categoryOptions := []notionapi.Option{
		{Name: "Technology", Color: notionapi.ColorBlue},
		{Name: "Politics", Color: notionapi.ColorRed},
		{Name: "Entertainment", Color: notionapi.ColorPurple},
		{Name: "Business", Color: notionapi.ColorGreen},
		{Name: "Sports", Color: notionapi.ColorOrange},
		{Name: "Science", Color: notionapi.ColorPink},
		{Name: "Health", Color: notionapi.ColorYellow},
		{Name: "Other", Color: notionapi.ColorGray},
	}

	db, err := c.api.Database.Create(ctx, &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(FormatID(parentPageID)),
		},
		Title: richText("Twitter/X Posts"),
		Properties: notionapi.PropertyConfigs{
			"Title": notionapi.TitlePropertyConfig{
				Type:  notionapi.PropertyConfigTypeTitle,
				Title: struct{}{},
			},
			"URL": notionapi.URLPropertyConfig{
				Type: notionapi.PropertyConfigTypeURL,
				URL:  struct{}{},
			},
			"Category": notionapi.SelectPropertyConfig{
				Type: notionapi.PropertyConfigTypeSelect,
				Select: notionapi.Select{
					Options: categoryOptions,
				},
			},
			"Summary": notionapi.RichTextPropertyConfig{
				Type:     notionapi.PropertyConfigTypeRichText,
				RichText: struct{}{},
			},
			"Importance": notionapi.NumberPropertyConfig{
				Type: notionapi.PropertyConfigTypeNumber,
				Number: notionapi.NumberFormat{
					Format: notionapi.FormatNumber,
				},
			},
			"Date Added": notionapi.CreatedTimePropertyConfig{
				Type:        notionapi.PropertyConfigCreatedTime,
				CreatedTime: struct{}{},
			},
		},
	})
	if err != nil {
		slog.Error("notion: failed to create database", "error", err)
		sentry.CaptureException(err)

		return "", err
	}

	slog.Info("notion: created archive database", "id", db.ID, "url", db.URL)

	return string(db.ID), nil
}
