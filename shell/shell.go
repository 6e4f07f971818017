// Package shell is an interactive terminal front end: several users share
// one simulated channel and type commands as any of them.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/scrabblebot/bot"
	"github.com/domino14/scrabblebot/game"
	"github.com/domino14/scrabblebot/lexicon"
)

const defaultChannel = "shell"

var (
	errNoData = errors.New("no data in this line")
	errUsage  = errors.New("usage: <user> <command> [args], or help")
)

type shellcmd struct {
	cmd  string
	args []string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

// terminal prints what the engine broadcasts.
type terminal struct {
	w io.Writer
}

func (t terminal) PostStatus(ctx context.Context, channel, text, replaces string) (string, error) {
	fmt.Fprintf(t.w, "[#%s]\n%s\n", channel, text)
	return "", nil
}

func (t terminal) PostPrivate(ctx context.Context, channel, userID, text string) error {
	fmt.Fprintf(t.w, "[to @%s] %s\n", userID, text)
	return nil
}

type ShellController struct {
	l       *readline.Instance
	w       io.Writer
	bot     *bot.Bot
	store   game.Store
	channel string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func newController(w io.Writer, st game.Store, dict lexicon.Dictionary, opts ...game.Option) *ShellController {
	out := terminal{w: w}
	opts = append([]game.Option{game.WithDisplay(game.PlainDisplay{})}, opts...)
	engine := game.NewEngine(st, dict, out, opts...)
	return &ShellController{
		w:       w,
		bot:     bot.NewBot(engine, out),
		store:   st,
		channel: defaultChannel,
	}
}

func NewShellController(st game.Store, dict lexicon.Dictionary) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mscrabble>\033[0m ",
		HistoryFile:     "/tmp/scrabblebot-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer,

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(l.Stdout(), st, dict)
	sc.l = l
	return sc
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("channel"),
	readline.PcItem("history"),
	readline.PcItem("exit"),
)

var reBareMention = regexp.MustCompile(`(^|\s)@([A-Za-z0-9_.-]+)`)

// mentions lets shell users write @name for the chat's <@name>.
func mentions(text string) string {
	return reBareMention.ReplaceAllString(text, "$1<@$2>")
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0]}
	if len(fields) > 1 {
		cmd.args = fields[1:]
	}
	return cmd, nil
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.w, msg)
	io.WriteString(sc.w, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// standardModeSwitch runs one line. It returns io.EOF when the user asks to
// leave.
func (sc *ShellController) standardModeSwitch(ctx context.Context, line string) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	} else if err != nil {
		sc.showError(err)
		return nil
	}

	var resp *Response
	switch cmd.cmd {
	case "exit":
		return io.EOF
	case "help":
		resp = msg(usage)
	case "channel":
		resp, err = sc.switchChannel(cmd)
	case "history":
		resp, err = sc.history(ctx)
	default:
		resp, err = sc.asUser(ctx, cmd)
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	ctx := context.Background()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if err := sc.standardModeSwitch(ctx, strings.TrimSpace(line)); err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
