package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"riseabove/backend/global"
)

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type Manager struct {
	store Store
	opts  Options
	newID func() string
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts, newID: uuid.NewString}
}

// Load returns the session named by the request cookie, or a fresh empty one.
func (m *Manager) Load(r *http.Request) *Session {
	s := &Session{}
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return s
	}
	id := strings.TrimSpace(c.Value)
	if id == "" {
		return s
	}
	s.fromReq = id
	data, err := m.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			s.loadErr = fmt.Errorf("load session: %w", err)
		}
		return s
	}
	s.id = id
	s.data = *data
	return s
}

// Commit writes s back to the store and sets or expires the cookie. It must
// run before the response header is written. A session whose load failed is
// never written and its cookie is left alone.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	for _, id := range s.stale {
		if err := m.store.Delete(ctx, id); err != nil {
			return err
		}
	}
	s.stale = nil

	if s.data.empty() {
		if s.id != "" && s.dirty {
			if err := m.store.Delete(ctx, s.id); err != nil {
				return err
			}
		}
		if s.fromReq != "" {
			m.expireCookie(w)
			s.fromReq = ""
		}
		s.id = ""
		s.dirty = false
		return nil
	}

	if s.id == "" {
		s.id = m.newID()
	}
	// saved on every request so the TTL slides with activity
	if err := m.store.Save(ctx, s.id, &s.data, m.opts.TTL); err != nil {
		return err
	}
	if s.id != s.fromReq {
		m.writeCookie(w, s.id)
		s.fromReq = s.id
	}
	s.dirty = false
	return nil
}

// Middleware attaches a *Session to every request and commits it right
// before the handler's first write (or after it returns without writing).
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Load(r)
		if s.loadErr != nil {
			global.Logger.Error().Err(s.loadErr).Str("path", r.URL.Path).Msg("session store unavailable")
			storeUnavailable(w, r)
			return
		}
		cw := &commitWriter{ResponseWriter: w}
		cw.commit = func() {
			if err := m.Commit(r.Context(), w, s); err != nil {
				global.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("commit session")
			}
		}
		next.ServeHTTP(cw, r.WithContext(WithSession(r.Context(), s)))
		cw.once.Do(cw.commit)
	})
}

// storeUnavailable answers 500 without touching the session cookie, so the
// client stays logged in once the store is back.
func storeUnavailable(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"Internal server error"}` + "\n"))
}

func (m *Manager) writeCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) expireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

type commitWriter struct {
	http.ResponseWriter
	once   sync.Once
	commit func()
}

func (w *commitWriter) WriteHeader(code int) {
	w.once.Do(w.commit)
	w.ResponseWriter.WriteHeader(code)
}

func (w *commitWriter) Write(b []byte) (int, error) {
	w.once.Do(w.commit)
	return w.ResponseWriter.Write(b)
}

func (w *commitWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
