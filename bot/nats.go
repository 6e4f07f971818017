package bot

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nuid"
	"github.com/rs/zerolog/log"
)

// NatsBroadcaster publishes Messages as JSON on a subject. A chat adapter
// on the other side delivers them.
type NatsBroadcaster struct {
	nc      *nats.Conn
	subject string
}

func NewNatsBroadcaster(nc *nats.Conn, subject string) *NatsBroadcaster {
	return &NatsBroadcaster{nc: nc, subject: subject}
}

func (n *NatsBroadcaster) Publish(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.nc.Publish(n.subject, data)
}

func (n *NatsBroadcaster) PostStatus(ctx context.Context, channel, text, replaces string) (string, error) {
	id := nuid.Next()
	err := n.Publish(Message{Kind: KindStatus, ID: id, Channel: channel, Text: text, Replaces: replaces})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (n *NatsBroadcaster) PostPrivate(ctx context.Context, channel, userID, text string) error {
	return n.Publish(Message{Kind: KindPrivate, Channel: channel, UserID: userID, Text: text})
}

// Reply answers a command sent as a NATS request.
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (bot *Bot) handleMsg(ctx context.Context, m *nats.Msg) Reply {
	log.Debug().Int("bytes", len(m.Data)).Str("subject", m.Subject).Msg("recv")
	var cmd Command
	if err := json.Unmarshal(m.Data, &cmd); err != nil {
		log.Err(err).Msg("bad command message")
		return Reply{Error: "could not parse command"}
	}
	if cmd.Channel == "" || cmd.UserID == "" {
		log.Warn().Str("text", cmd.Text).Msg("command without channel or user")
		return Reply{Error: "command needs a channel and a user"}
	}
	if err := bot.Dispatch(ctx, cmd); err != nil {
		return Reply{Error: errorMessage(err)}
	}
	return Reply{OK: true}
}

// Serve handles commands published on subject until ctx is done. Commands
// are handled one at a time, in arrival order.
func Serve(ctx context.Context, nc *nats.Conn, subject string, bot *Bot) error {
	msgs := make(chan *nats.Msg, 64)
	sub, err := nc.ChanSubscribe(subject, msgs)
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	log.Info().Str("subject", subject).Msg("listening")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("draining subscription")
			if err := sub.Unsubscribe(); err != nil {
				log.Err(err).Msg("unsubscribing")
			}
			return nil
		case m := <-msgs:
			reply := bot.handleMsg(ctx, m)
			if m.Reply == "" {
				continue
			}
			data, err := json.Marshal(reply)
			if err != nil {
				log.Err(err).Msg("encoding reply")
				continue
			}
			if err := m.Respond(data); err != nil {
				log.Err(err).Msg("responding")
			}
		}
	}
}
