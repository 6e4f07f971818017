// Package bot connects chat commands to the game engine, and the engine's
// messages back to the chat.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/scrabblebot/game"
	"github.com/domino14/scrabblebot/tiletext"
)

const genericErrorMessage = "Something went wrong, please try again later"

// Bot routes commands to an engine. It posts through the same Broadcaster
// as the engine.
type Bot struct {
	engine *game.Engine
	out    game.Broadcaster
}

func NewBot(engine *game.Engine, out game.Broadcaster) *Bot {
	return &Bot{engine: engine, out: out}
}

// Handle runs a command. A refused command returns the *game.Error from the
// engine.
func (bot *Bot) Handle(ctx context.Context, cmd Command) (*game.Result, error) {
	action, args := cmd.split()
	log.Debug().Str("channel", cmd.Channel).Str("user", cmd.UserID).
		Str("action", action).Str("args", args).Msg("command")

	switch action {
	case "new-game":
		return bot.engine.NewGame(ctx, cmd.Channel, cmd.UserID, parseMentions(args))
	case "rack", "tiles":
		return bot.engine.Rack(ctx, cmd.Channel, cmd.UserID)
	case "reorder":
		return bot.engine.Reorder(ctx, cmd.Channel, cmd.UserID, args)
	case "exchange":
		return bot.engine.Exchange(ctx, cmd.Channel, cmd.UserID, args)
	case "play":
		return bot.engine.PlayWord(ctx, cmd.Channel, cmd.UserID, args)
	case "challenge":
		return bot.engine.Challenge(ctx, cmd.Channel, cmd.UserID)
	case "undo":
		return bot.engine.Undo(ctx, cmd.Channel, cmd.UserID)
	case "tile":
		if args == "" {
			return nil, &game.Error{Kind: game.UserInput, Msg: "Invalid command format - usage: tile <text>"}
		}
		text := tiletext.FromText(args)
		if _, err := bot.out.PostStatus(ctx, cmd.Channel, text, ""); err != nil {
			return nil, err
		}
		return &game.Result{Status: text}, nil
	case "help", "":
		if err := bot.out.PostPrivate(ctx, cmd.Channel, cmd.UserID, HelpText); err != nil {
			return nil, err
		}
		return &game.Result{Private: HelpText}, nil
	}
	return nil, &game.Error{Kind: game.UserInput, Msg: fmt.Sprintf("'%v' is not a valid action", action)}
}

// Dispatch runs a command and privately tells the user if it was refused.
func (bot *Bot) Dispatch(ctx context.Context, cmd Command) error {
	_, err := bot.Handle(ctx, cmd)
	if err == nil {
		return nil
	}
	if game.KindOf(err) == game.StoreFailure || game.KindOf(err) == 0 {
		log.Err(err).Str("channel", cmd.Channel).Str("user", cmd.UserID).Msg("command failed")
	}
	if perr := bot.out.PostPrivate(ctx, cmd.Channel, cmd.UserID, errorMessage(err)); perr != nil {
		log.Err(perr).Str("channel", cmd.Channel).Msg("posting error message")
	}
	return err
}

// errorMessage is what a user is told about a refused command. Store and
// transport failures are not described.
func errorMessage(err error) string {
	var gerr *game.Error
	if errors.As(err, &gerr) && gerr.Kind != game.StoreFailure {
		return gerr.Msg
	}
	return genericErrorMessage
}
