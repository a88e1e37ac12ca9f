// Package session keeps server-side login state keyed by an opaque cookie
// token. Handlers see it as a *Session taken from the request context.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNoSession = errors.New("session not found")

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Data is what a Store persists per session.
type Data struct {
	UserID  uint    `json:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

func (d *Data) empty() bool { return d.UserID == 0 && len(d.Flashes) == 0 }

// Store persists session data. Load returns ErrNoSession for unknown or
// expired ids.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
