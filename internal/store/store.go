package store

import (
	"context"
	"errors"
)

// Document names. Each one is an independently persisted JSON document owned
// by a single aggregate.
const (
	DocConfig  = "config"
	DocUsers   = "users"
	DocAnswers = "answers"
	DocAdmins  = "admins"
)

// ErrNotFound reports that a named document has never been saved.
var ErrNotFound = errors.New("document not found")

// Store persists named JSON documents. Load unmarshals into out and returns
// ErrNotFound for a document that does not exist yet. Save replaces the
// document wholesale.
type Store interface {
	Load(ctx context.Context, name string, out any) error
	Save(ctx context.Context, name string, doc any) error
}
