package chat

import "context"

// Kind tells a one-on-one chat apart from the shared group chat.
type Kind string

const (
	KindPrivate Kind = "private"
	KindGroup   Kind = "group"
)

// Update is one decoded inbound chat event. Commands arrive with the leading
// slash stripped and any bot-name suffix removed; plain text arrives with
// IsCommand false and Command empty.
type Update struct {
	ChatID    int64
	Kind      Kind
	Text      string
	IsCommand bool
	Command   string
	Args      string
}

// UpdateDecoder turns one raw webhook payload into an Update. ok is false for
// well-formed payloads the bot does not handle, such as edits or media-only
// messages.
type UpdateDecoder func(data []byte) (u Update, ok bool, err error)

// Sender delivers text to a chat address, either a member's private chat or
// the group chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
