package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bakulab/scrumbot/internal/chat"
)

// Client sends messages through the Telegram Bot API.
type Client struct {
	api *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return &Client{api: api}, nil
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	_ = ctx // the underlying client has no context support
	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}

// DecodeUpdate reads one Telegram webhook payload. Updates without a text
// message (edits, joins, media) decode with ok false and are dropped upstream.
func DecodeUpdate(data []byte) (chat.Update, bool, error) {
	var upd tgbotapi.Update
	if err := json.Unmarshal(data, &upd); err != nil {
		return chat.Update{}, false, fmt.Errorf("failed to decode telegram update: %w", err)
	}

	msg := upd.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return chat.Update{}, false, nil
	}

	kind := chat.KindGroup
	if msg.Chat.IsPrivate() {
		kind = chat.KindPrivate
	}

	u := chat.Update{
		ChatID: msg.Chat.ID,
		Kind:   kind,
		Text:   msg.Text,
	}
	if name, args, ok := parseCommand(msg.Text); ok {
		u.IsCommand = true
		u.Command = name
		u.Args = args
	}
	return u, true, nil
}

// parseCommand splits "/cmd@bot arg arg" into a lowercase command name and its
// raw argument string.
func parseCommand(text string) (name, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	rest := strings.TrimPrefix(text, "/")
	if i := strings.IndexAny(rest, " \t\n"); i >= 0 {
		name, args = rest[:i], strings.TrimSpace(rest[i+1:])
	} else {
		name = rest
	}
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return "", "", false
	}
	return strings.ToLower(name), args, true
}
