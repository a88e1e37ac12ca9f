// Package view renders the HTML pages. Templates are embedded in the binary;
// a directory on disk can replace them and be reloaded on change.
package view

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"riseabove/backend/app/session"
	"riseabove/backend/global"
)

//go:embed templates/*.html
var embedded embed.FS

const layoutFile = "layout.html"

// Pages lists the renderable page names (template file without .html).
var Pages = []string{"home", "calendar", "login", "register"}

// Page is the data every template receives.
type Page struct {
	Title    string
	LoggedIn bool
	Flashes  []session.Flash
	Data     any
}

type Renderer struct {
	mu    sync.RWMutex
	fsys  fs.FS
	dir   string
	pages map[string]*template.Template
}

// New parses the embedded templates, or the ones in dir when it is not empty.
func New(dir string) (*Renderer, error) {
	r := &Renderer{dir: dir}
	if dir == "" {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		r.fsys = sub
	} else {
		r.fsys = os.DirFS(dir)
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses every page. On error the previous templates stay active.
func (r *Renderer) Reload() error {
	pages := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		t, err := template.New(name).ParseFS(r.fsys, layoutFile, name+".html")
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// Render executes page name into a buffer first so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Watch reloads the on-disk templates whenever a file in the directory
// changes, until ctx is done. It is a no-op for embedded templates.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(r.dir); err != nil {
		return err
	}

	// editors emit bursts of events per save
	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".html") || ev.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			global.Logger.Warn().Err(err).Msg("template watcher")
		case <-timer.C:
			if err := r.Reload(); err != nil {
				global.Logger.Error().Err(err).Str("dir", filepath.Clean(r.dir)).Msg("reload templates")
				continue
			}
			global.Logger.Info().Str("dir", filepath.Clean(r.dir)).Msg("templates reloaded")
		}
	}
}
