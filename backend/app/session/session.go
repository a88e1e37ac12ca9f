package session

import "context"

// Session is the per-request view of one client's server-side state.
// It is not safe for concurrent use; each request gets its own.
type Session struct {
	id      string
	data    Data
	dirty   bool
	stale   []string
	fromReq string
	loadErr error
}

func (s *Session) ID() string { return s.id }

func (s *Session) UserID() (uint, bool) { return s.data.UserID, s.data.UserID != 0 }

// SetUserID logs the client in. The session id is replaced so a token
// issued before login cannot be reused after it.
func (s *Session) SetUserID(id uint) {
	s.rotate()
	s.data.UserID = id
	s.dirty = true
}

// Clear drops every value, flashes included, and forgets the stored record.
func (s *Session) Clear() {
	s.rotate()
	s.data = Data{}
	s.dirty = true
}

func (s *Session) AddFlash(kind, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Kind: kind, Message: message})
	s.dirty = true
}

// Flashes returns the pending flashes and removes them from the session.
func (s *Session) Flashes() []Flash {
	if len(s.data.Flashes) == 0 {
		return nil
	}
	out := s.data.Flashes
	s.data.Flashes = nil
	s.dirty = true
	return out
}

func (s *Session) rotate() {
	if s.id != "" {
		s.stale = append(s.stale, s.id)
	}
	s.id = ""
}

type ctxKey int

const sessionKey ctxKey = 1

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the request's session, or nil outside Manager.Middleware.
func FromContext(ctx context.Context) *Session {
	if v := ctx.Value(sessionKey); v != nil {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}
