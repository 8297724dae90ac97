// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package console

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Defaults for zero Options fields.
const (
	DefaultCoursesPerPage = 420
	DefaultSessionMaxAge  = 12 * time.Hour
)

// Options configures a Console.
type Options struct {
	// BaseURL is the Canvas host, e.g. https://canvas.nus.edu.sg.
	BaseURL string

	// CoursesPerPage is the per_page of the course list.
	CoursesPerPage int

	SessionMaxAge time.Duration
	SessionSecret string
	SecureCookie  bool
}

// Console is the server-rendered browser UI.
type Console struct {
	clients  canvas.Factory
	opts     Options
	sessions *SessionStore
	signer   *CookieSigner
	pages    map[string]*template.Template
}

// New creates a Console that talks to Canvas through clients.
func New(clients canvas.Factory, opts Options) (*Console, error) {
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	if opts.CoursesPerPage <= 0 {
		opts.CoursesPerPage = DefaultCoursesPerPage
	}
	if opts.SessionMaxAge <= 0 {
		opts.SessionMaxAge = DefaultSessionMaxAge
	}

	signer, err := NewCookieSigner(opts.SessionSecret, opts.SessionMaxAge)
	if err != nil {
		return nil, err
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Console{
		clients:  clients,
		opts:     opts,
		sessions: NewSessionStore(opts.SessionMaxAge),
		signer:   signer,
		pages:    pages,
	}, nil
}

// Sessions exposes the session store.
func (c *Console) Sessions() *SessionStore {
	return c.sessions
}

// Routes returns the console's chi router.
func (c *Console) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(pageHeaders)

	r.Get("/", c.handleIndex)
	r.Post("/token", c.handleToken)

	r.Group(func(r chi.Router) {
		r.Use(c.requireSession)
		r.Get("/courses", c.handleCourses)
		r.Post("/courses/{id}/toggle", c.handleToggle)
		r.Post("/courses/{id}/remove", c.handleRemove)
		r.Get("/track", c.handleTrack)
		r.Post("/logout", c.handleLogout)
	})
	return r
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"bytes": func(n int64) string {
			if n < 0 {
				n = 0
			}
			return humanize.Bytes(uint64(n))
		},
		"ago": humanize.Time,
	}

	pages := make(map[string]*template.Template)
	for _, page := range []string{"token.html", "courses.html", "track.html"} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return pages, nil
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (c *Console) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	var buf bytes.Buffer
	if err := c.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// profileURL is the absolute users/self/profile URL of the Canvas host.
func (c *Console) profileURL() string {
	return c.opts.BaseURL + canvas.APIPrefix + "users/self/profile"
}

// client builds a Canvas client for a session's token.
func (c *Console) client(s *Session) (canvas.API, error) {
	return c.clients(s.Token)
}

func pageHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

type sessionKey struct{}

func sessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// currentSession resolves the request's cookie to a live session.
func (c *Console) currentSession(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	id, err := c.signer.Verify(cookie.Value)
	if err != nil {
		return nil, err
	}
	return c.sessions.Get(id)
}

// requireSession sends browsers without a live session back to the token
// dialog.
func (c *Console) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := c.currentSession(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("No console session")
			c.clearCookie(w)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
	})
}

func (c *Console) setCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.opts.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *Console) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
