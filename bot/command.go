package bot

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/scrabblebot/tiletext"
)

// Command is one chat command: the text a user typed in a channel, without
// any prefix the chat uses to address the bot.
type Command struct {
	Channel string `json:"channel"`
	UserID  string `json:"userId"`
	Text    string `json:"text"`
}

// Mentions look like <@U123> or <@U123|name>.
var reMention = regexp.MustCompile(`<@([A-Za-z0-9_.-]+)(?:\|[^>]*)?>`)

func parseMentions(text string) []string {
	return lo.Map(reMention.FindAllStringSubmatch(text, -1), func(m []string, _ int) string {
		return m[1]
	})
}

// split normalizes the text and splits off the lowercased action.
func (c Command) split() (action, args string) {
	text := strings.TrimSpace(tiletext.ToText(c.Text))
	action, args, _ = strings.Cut(text, " ")
	return strings.ToLower(action), strings.TrimSpace(args)
}
