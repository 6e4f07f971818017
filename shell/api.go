package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/bot"
	"github.com/domino14/scrabblebot/game"
)

const usage = `Type a user name followed by a chat command, for example:

  alice new-game @alice @bob
  alice play (7,7) (9,7) cat
  bob challenge
  bob rack

Chat commands:
` + bot.HelpText + `

Shell commands:
  channel [name]   show or switch the channel
  history          show the turns of the channel's game
  help             show this message
  exit             leave the shell`

func (sc *ShellController) asUser(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errUsage
	}
	text := mentions(strings.Join(cmd.args, " "))
	_, err := sc.bot.Handle(ctx, bot.Command{Channel: sc.channel, UserID: cmd.cmd, Text: text})
	return nil, err
}

func (sc *ShellController) switchChannel(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg("channel: " + sc.channel), nil
	}
	if len(cmd.args) > 1 {
		return nil, errors.New("usage: channel [name]")
	}
	sc.channel = cmd.args[0]
	return msg("switched to channel " + sc.channel), nil
}

type historyEntry struct {
	Turn     int      `yaml:"turn"`
	Type     string   `yaml:"type"`
	Player   string   `yaml:"player"`
	Status   string   `yaml:"status"`
	Words    []string `yaml:"words,omitempty"`
	Points   int      `yaml:"points,omitempty"`
	Tiles    string   `yaml:"tiles,omitempty"`
	Drew     string   `yaml:"drew,omitempty"`
	Outcome  string   `yaml:"outcome,omitempty"`
	Disputed []string `yaml:"disputed,omitempty"`
}

func historyEntries(turns game.Turns) []historyEntry {
	entries := make([]historyEntry, 0, len(turns))
	for idx, t := range turns {
		e := historyEntry{
			Turn:   idx + 1,
			Type:   string(t.Type()),
			Player: t.Info().UserID,
			Status: t.Info().StatusMessage,
		}
		switch v := t.(type) {
		case *game.WordTurn:
			e.Words = v.Words
			e.Points = v.Points
			e.Drew = alphabet.TilesString(v.DrawnTiles)
			for _, pt := range v.PlayedTiles {
				e.Tiles += pt.Letter.String()
			}
		case *game.ExchangeTurn:
			e.Tiles = alphabet.TilesString(v.ExchangedTiles)
			e.Drew = alphabet.TilesString(v.DrawnTiles)
			if v.Passed {
				e.Outcome = "passed"
			}
		case *game.ChallengeTurn:
			e.Outcome = "failed"
			if v.Successful {
				e.Outcome = "successful"
			}
			if v.ChallengedTurn != nil {
				e.Disputed = v.ChallengedTurn.Words
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func (sc *ShellController) history(ctx context.Context) (*Response, error) {
	s, err := sc.store.Load(ctx, sc.channel)
	if errors.Is(err, game.ErrStateNotFound) {
		return nil, game.ErrNoActiveGame
	} else if err != nil {
		return nil, err
	}
	if len(s.Turns) == 0 {
		return msg("no turns yet"), nil
	}
	out, err := yaml.Marshal(historyEntries(s.Turns))
	if err != nil {
		return nil, fmt.Errorf("rendering history: %w", err)
	}
	return msg(strings.TrimRight(string(out), "\n")), nil
}
