package bot

import (
	"context"
	"fmt"
	"sync"
)

// Message kinds.
const (
	KindStatus  = "status"
	KindPrivate = "private"
)

// Message is one outbound chat message. A status message with Replaces set
// should replace the earlier message of that ID.
type Message struct {
	Kind     string `json:"kind"`
	ID       string `json:"id,omitempty"`
	Channel  string `json:"channel"`
	UserID   string `json:"userId,omitempty"`
	Text     string `json:"text"`
	Replaces string `json:"replaces,omitempty"`
}

// Collector is a game.Broadcaster that keeps what it is given, for callers
// that deliver messages after a command has run.
type Collector struct {
	mu       sync.Mutex
	messages []Message
	next     int
}

func (c *Collector) PostStatus(ctx context.Context, channel, text, replaces string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	id := fmt.Sprintf("msg-%d", c.next)
	c.messages = append(c.messages, Message{
		Kind: KindStatus, ID: id, Channel: channel, Text: text, Replaces: replaces,
	})
	return id, nil
}

func (c *Collector) PostPrivate(ctx context.Context, channel, userID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{
		Kind: KindPrivate, Channel: channel, UserID: userID, Text: text,
	})
	return nil
}

// Take returns the collected messages and forgets them.
func (c *Collector) Take() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.messages
	c.messages = nil
	return msgs
}
