package bot

import (
	"context"
	"strings"

	t "github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// commandForThisBot matches commands addressed to nobody or explicitly to
// this bot, so that /setup@other_bot in a group is ignored.
func (b *Bot) commandForThisBot() th.Predicate {
	return func(_ context.Context, update t.Update) bool {
		if update.Message == nil {
			return false
		}

		matches := th.CommandRegexp.FindStringSubmatch(update.Message.Text)
		if len(matches) != th.CommandMatchGroupsLen {
			return false
		}

		addressedUsername := matches[th.CommandMatchBotUsernameGroup]
		if addressedUsername == "" {
			return true
		}

		if b.profile.Username == "" {
			return false
		}

		return strings.EqualFold(addressedUsername, b.profile.Username)
	}
}
