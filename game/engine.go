package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/board"
	"github.com/domino14/scrabblebot/lexicon"
	"github.com/domino14/scrabblebot/move"
	"github.com/domino14/scrabblebot/randutil"
)

// Store persists one live game per channel. Archive moves a finished game
// out of the way; Load never returns an archived game.
type Store interface {
	Load(ctx context.Context, channel string) (*State, error)
	Save(ctx context.Context, s *State) error
	Archive(ctx context.Context, channel string) error
}

// Broadcaster delivers messages to the chat. PostStatus posts to the whole
// channel, replacing the earlier status message identified by replaces if
// it is not empty, and returns an id for the new message.
type Broadcaster interface {
	PostStatus(ctx context.Context, channel, text, replaces string) (string, error)
	PostPrivate(ctx context.Context, channel, userID, text string) error
}

// Result describes what a command showed. Status is the channel text, if
// one was posted; Private is what the issuing user was privately shown.
type Result struct {
	Status   string
	Private  string
	GameOver bool
}

// Engine runs commands against stored games. Each command loads the
// channel's game, validates, mutates and saves it as one unit; nothing is
// saved or broadcast for a refused command. An Engine is not safe for
// concurrent use.
type Engine struct {
	store   Store
	dict    lexicon.Dictionary
	out     Broadcaster
	display Display
	rng     *rand.Rand
}

type Option func(*Engine)

// WithRand sets the source used for seating and draws.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithDisplay sets how status messages are rendered.
func WithDisplay(d Display) Option {
	return func(e *Engine) { e.display = d }
}

func NewEngine(store Store, dict lexicon.Dictionary, out Broadcaster, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		dict:    dict,
		out:     out,
		display: EmojiDisplay{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.NewSeeded()
	}
	return e
}

func (e *Engine) load(ctx context.Context, channel string) (*State, error) {
	s, err := e.store.Load(ctx, channel)
	if errors.Is(err, ErrStateNotFound) {
		return nil, ErrNoActiveGame
	}
	if err != nil {
		log.Err(err).Str("channel", channel).Msg("loading game")
		return nil, storeFailure("loading game", err)
	}
	return s, nil
}

func (e *Engine) save(ctx context.Context, s *State) error {
	if err := e.store.Save(ctx, s); err != nil {
		log.Err(err).Str("channel", s.Channel).Msg("saving game")
		return storeFailure("saving game", err)
	}
	return nil
}

// seated loads the game and finds the user's seat.
func (e *Engine) seated(ctx context.Context, channel, userID string) (*State, *Player, error) {
	s, err := e.load(ctx, channel)
	if err != nil {
		return nil, nil, err
	}
	p := s.PlayerFor(userID)
	if p == nil {
		return nil, nil, ErrNotInGame
	}
	return s, p, nil
}

// onTurn is seated, and also requires it to be the user's turn.
func (e *Engine) onTurn(ctx context.Context, channel, userID string) (*State, *Player, error) {
	s, p, err := e.seated(ctx, channel, userID)
	if err != nil {
		return nil, nil, err
	}
	if p.Slot != s.CurrentPlayer {
		log.Debug().Str("user", userID).Int("current", s.CurrentPlayer).Msg("not the current player")
		return nil, nil, ErrNotYourTurn
	}
	return s, p, nil
}

// NewGame deals a new game for 2 to 4 users in random seating order.
func (e *Engine) NewGame(ctx context.Context, channel, initiator string, userIDs []string) (*Result, error) {
	log.Info().Str("channel", channel).Str("initiator", initiator).
		Strs("players", userIDs).Msg("new-game")
	_, err := e.store.Load(ctx, channel)
	if err == nil {
		return nil, ErrGameInProgress
	}
	if !errors.Is(err, ErrStateNotFound) {
		log.Err(err).Str("channel", channel).Msg("loading game")
		return nil, storeFailure("loading game", err)
	}
	if len(userIDs) < MinPlayers || len(userIDs) > MaxPlayers {
		return nil, ErrPlayerCount
	}
	if len(lo.Uniq(userIDs)) != len(userIDs) {
		return nil, userInput("Error: each player can only join once")
	}

	s := &State{
		Channel:       channel,
		TilePouch:     alphabet.NewPouch(),
		CurrentPlayer: 1,
		Turns:         Turns{},
	}
	s.TilePouch.Shuffle(e.rng)
	seating := append([]string{}, userIDs...)
	e.rng.Shuffle(len(seating), func(i, j int) {
		seating[i], seating[j] = seating[j], seating[i]
	})
	for idx, uid := range seating {
		p := &Player{Slot: idx + 1, UserID: uid}
		p.Rack.Refill(&s.TilePouch, e.rng)
		s.Players[idx] = p
	}

	res, err := e.publish(ctx, s, "A new scrabble game has been started!", false)
	if err != nil {
		return nil, err
	}
	for _, p := range s.Seated() {
		e.showRack(ctx, s, p)
	}
	return res, nil
}

// Rack privately shows a seated player their tiles.
func (e *Engine) Rack(ctx context.Context, channel, userID string) (*Result, error) {
	s, p, err := e.seated(ctx, channel, userID)
	if err != nil {
		return nil, err
	}
	return &Result{Private: e.showRack(ctx, s, p)}, nil
}

// Reorder moves the given tiles, in order, to the front of the user's rack.
func (e *Engine) Reorder(ctx context.Context, channel, userID, tiles string) (*Result, error) {
	s, p, err := e.seated(ctx, channel, userID)
	if err != nil {
		return nil, err
	}
	order, err := alphabet.ToTiles(strings.Join(strings.Fields(tiles), ""))
	if err != nil {
		return nil, userInput("Unable to reorder tiles, %v", err)
	}
	if len(order) > alphabet.RackSize {
		return nil, userInput("Unable to reorder tile rack, invalid number of tiles provided")
	}
	if missing, ok := firstMissing(p.Rack, order); !ok {
		return nil, ruleViolation("Unable to reorder tiles, %v is not in your tile rack", tileName(missing))
	}
	reordered, err := p.Rack.Reorder(order)
	if err != nil {
		return nil, ruleViolation("Unable to reorder tiles, %v", err)
	}
	p.Rack = reordered
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}
	return &Result{Private: e.showRack(ctx, s, p)}, nil
}

// firstMissing finds the first tile that the rack cannot supply, counting
// repeats.
func firstMissing(rack alphabet.Rack, tiles []alphabet.Tile) (alphabet.Tile, bool) {
	remaining := append(alphabet.Rack{}, rack...)
	for _, t := range tiles {
		if err := remaining.Take([]alphabet.Tile{t}); err != nil {
			return t, false
		}
	}
	return alphabet.NoTile, true
}

// PlayWord plays "(x,y) (x,y) word [replacements]" for the current player.
func (e *Engine) PlayWord(ctx context.Context, channel, userID, text string) (*Result, error) {
	s, p, err := e.onTurn(ctx, channel, userID)
	if err != nil {
		return nil, err
	}
	placement, err := move.Parse(text)
	if errors.Is(err, move.ErrFormat) {
		return nil, userInput("Invalid command format - usage: %v", move.Usage)
	} else if err != nil {
		return nil, userInput("Unable to play word - %v", err)
	}
	placed, scored, err := checkPlacement(&s.Board, p.Rack, placement)
	if err != nil {
		log.Debug().Err(err).Str("user", userID).Str("play", placement.String()).Msg("play refused")
		return nil, err
	}

	for _, pt := range placed {
		if err := s.Board.Set(pt.X, pt.Y, pt.Square()); err != nil {
			return nil, ruleViolation("Unable to play word - %v", err)
		}
	}
	used := lo.Map(placed, func(pt PlayedTile, _ int) alphabet.Tile { return pt.Letter })
	if err := p.Rack.Take(used); err != nil {
		return nil, ruleViolation("Unable to play word - %v", err)
	}
	p.Points += scored.points
	drawn := p.Rack.Refill(&s.TilePouch, e.rng)
	p.PassedLastTurn = false

	status := e.wordStatus(p, placement, scored.points)
	s.Turns = append(s.Turns, &WordTurn{
		TurnInfo:    TurnInfo{Player: p.Slot, UserID: p.UserID, StatusMessage: status},
		Words:       scored.words,
		Points:      scored.points,
		DrawnTiles:  drawn,
		PlayedTiles: placed,
	})
	log.Info().Str("channel", channel).Str("user", userID).Strs("words", scored.words).
		Int("points", scored.points).Msg("word-played")
	s.advance()

	if len(s.TilePouch) == 0 && len(p.Rack) == 0 {
		return e.gameOver(ctx, s, "")
	}
	return e.publish(ctx, s, status, true)
}

func (e *Engine) wordStatus(p *Player, placement *move.Placement, points int) string {
	word := e.display.Tiles(placement.Word)
	if len(placement.Replacements) > 0 {
		resolved := lo.Map(placement.Squares(), func(sq board.Square, _ int) alphabet.Tile { return sq.Face() })
		word += " (" + e.display.Tiles(resolved) + ")"
	}
	return fmt.Sprintf("%v played %v for %d points", e.display.Mention(p.UserID), word, points)
}

// Exchange trades tiles for new ones from the pouch. Exchanging nothing
// passes; once the pouch is empty a pass counts toward ending the game.
func (e *Engine) Exchange(ctx context.Context, channel, userID, tiles string) (*Result, error) {
	s, p, err := e.onTurn(ctx, channel, userID)
	if err != nil {
		return nil, err
	}
	exchanged, err := alphabet.ToTiles(strings.Join(strings.Fields(tiles), ""))
	if err != nil {
		return nil, userInput("Unable to exchange tiles, %v", err)
	}
	if len(exchanged) > alphabet.RackSize || len(exchanged) > len(p.Rack) {
		return nil, userInput("Unable to exchange tiles, invalid number of tiles provided")
	}
	if len(exchanged) > len(s.TilePouch) {
		return nil, ruleViolation(
			"Unable to exchange tiles, cannot exchange %d tiles when there are only %d in the tile pouch",
			len(exchanged), len(s.TilePouch))
	}
	if missing, ok := firstMissing(p.Rack, exchanged); !ok {
		return nil, ruleViolation("Unable to exchange tiles, %v is not in your tile rack", tileName(missing))
	}

	turn := &ExchangeTurn{
		TurnInfo:       TurnInfo{Player: p.Slot, UserID: p.UserID},
		ExchangedTiles: exchanged,
		DrawnTiles:     []alphabet.Tile{},
	}
	if len(exchanged) == 0 {
		turn.StatusMessage = e.display.Mention(p.UserID) + " passed"
		if len(s.TilePouch) == 0 {
			turn.Passed = true
			p.PassedLastTurn = true
		}
	} else {
		if err := p.Rack.Take(exchanged); err != nil {
			return nil, ruleViolation("Unable to exchange tiles, %v", err)
		}
		// Draw before returning the old tiles so none of them come straight back.
		turn.DrawnTiles = p.Rack.Refill(&s.TilePouch, e.rng)
		s.TilePouch.PutBack(exchanged)
		turn.StatusMessage = fmt.Sprintf("%v exchanged %d tiles", e.display.Mention(p.UserID), len(exchanged))
	}
	s.Turns = append(s.Turns, turn)
	log.Info().Str("channel", channel).Str("user", userID).Int("tiles", len(exchanged)).
		Bool("passed", turn.Passed).Msg("exchanged")

	if turn.Passed && s.allPassed() {
		return e.gameOver(ctx, s, "All players have passed, there are no moves left!")
	}
	s.advance()
	res, err := e.publish(ctx, s, turn.StatusMessage, true)
	if err != nil {
		return nil, err
	}
	if len(exchanged) > 0 {
		res.Private = e.showRack(ctx, s, p)
	}
	return res, nil
}

// statusText is the full channel status: the message, who is up, the
// board, the scores and the pouch count.
func (e *Engine) statusText(s *State, message string, showUp bool) string {
	var sb strings.Builder
	sb.WriteString(message)
	if cur := s.Current(); showUp && cur != nil {
		sb.WriteString("\n\n" + e.display.Mention(cur.UserID) + " is up!")
	}
	sb.WriteString("\n\n" + e.display.Board(&s.Board))
	scores := lo.Map(s.Seated(), func(p *Player, _ int) string {
		return fmt.Sprintf("%v: %d", e.display.Mention(p.UserID), p.Points)
	})
	sb.WriteString("\n\n" + strings.Join(scores, " "))
	fmt.Fprintf(&sb, "\nRemaining Tiles: %d", len(s.TilePouch))
	return sb.String()
}

// publish saves the game, then posts its status in place of the previous
// one and, if asked, privately shows the current player their rack. A
// failed post is logged; the saved game stands.
func (e *Engine) publish(ctx context.Context, s *State, message string, revealCurrent bool) (*Result, error) {
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}
	text := e.statusText(s, message, true)
	id, err := e.out.PostStatus(ctx, s.Channel, text, s.StatusMessageID)
	if err != nil {
		log.Err(err).Str("channel", s.Channel).Msg("posting status")
	} else if id != "" && id != s.StatusMessageID {
		s.StatusMessageID = id
		if err := e.store.Save(ctx, s); err != nil {
			log.Err(err).Str("channel", s.Channel).Msg("saving status message id")
		}
	}
	if revealCurrent {
		if cur := s.Current(); cur != nil {
			e.showRack(ctx, s, cur)
		}
	}
	return &Result{Status: text}, nil
}

// showRack privately posts a player's rack and returns the text shown.
func (e *Engine) showRack(ctx context.Context, s *State, p *Player) string {
	text := e.display.Tiles(p.Rack)
	if err := e.out.PostPrivate(ctx, s.Channel, p.UserID, text); err != nil {
		log.Err(err).Str("channel", s.Channel).Str("user", p.UserID).Msg("posting rack")
	}
	return text
}

// gameOver announces the winner and archives the game. message replaces
// the default "game over" banner.
func (e *Engine) gameOver(ctx context.Context, s *State, message string) (*Result, error) {
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}
	if message == "" {
		message = e.display.Banner("game over")
	}
	leaders := s.leaders()
	names := lo.Map(leaders, func(p *Player, _ int) string { return e.display.Mention(p.UserID) })
	var verdict string
	if len(leaders) == 1 {
		verdict = fmt.Sprintf("%v wins with %d points!", names[0], leaders[0].Points)
	} else {
		verdict = fmt.Sprintf("%v tie with %d points!", joinNames(names), leaders[0].Points)
	}
	last := ""
	if t := s.Turns.Last(); t != nil {
		last = t.Info().StatusMessage
	}
	text := e.statusText(s, last+"\n\n\n"+message+"\n"+verdict, false)
	if _, err := e.out.PostStatus(ctx, s.Channel, text, s.StatusMessageID); err != nil {
		log.Err(err).Str("channel", s.Channel).Msg("posting game over")
	}
	log.Info().Str("channel", s.Channel).Strs("winners", names).Msg("game-over")
	if err := e.store.Archive(ctx, s.Channel); err != nil {
		log.Err(err).Str("channel", s.Channel).Msg("archiving game")
		return nil, storeFailure("archiving game", err)
	}
	return &Result{Status: text, GameOver: true}, nil
}

func joinNames(names []string) string {
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
