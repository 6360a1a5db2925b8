// Package web serves a local single-user quiz browser; it intentionally has no
// auth/CSRF protection. Every browser session holds its own loaded table.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quizdb/importer"
	"quizdb/quiz"
	"quizdb/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	sessionCookieName     = "quizdb_session"
	defaultMaxUploadBytes = 32 << 20
)

type Options struct {
	Resolver       quiz.Resolver
	Import         importer.Options
	AllowedOrigins []string
	MaxUploadBytes int64
	// AllowPathLoad lets POST /load read a file named by the "path" field
	// from the server's filesystem. Uploads are always accepted.
	AllowPathLoad bool
	Logger        *slog.Logger
}

type Server struct {
	router        *chi.Mux
	sessions      *session.Manager
	resolver      quiz.Resolver
	importOptions importer.Options
	origins       []string
	maxUpload     int64
	pathLoad      bool
	logger        *slog.Logger
	page          *template.Template
	now           func() time.Time
}

func NewServer(sessions *session.Manager, options Options) *Server {
	s := &Server{
		router:        chi.NewRouter(),
		sessions:      sessions,
		resolver:      options.Resolver,
		importOptions: options.Import,
		origins:       options.AllowedOrigins,
		maxUpload:     options.MaxUploadBytes,
		pathLoad:      options.AllowPathLoad,
		logger:        options.Logger,
		page:          template.Must(template.ParseFS(templateFS, "templates/index.html")),
		now:           time.Now,
	}
	if s.resolver.Fallback == "" {
		s.resolver = quiz.DefaultResolver
	}
	if s.maxUpload <= 0 {
		s.maxUpload = defaultMaxUploadBytes
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/", s.handleIndex)
	s.router.Post("/load", s.handleLoad)
	s.router.Post("/reset", s.handleReset)
	s.router.Get("/download/{format}", s.handleDownload)
	s.router.Get("/api/records", s.handleAPIRecords)
	s.router.Get("/api/columns", s.handleAPIColumns)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SweepSessions drops idle sessions every interval until ctx is done.
func (s *Server) SweepSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sessions.Sweep(); removed > 0 {
				s.logger.Debug("expired sessions removed", "count", removed, "active", s.sessions.Len())
			}
		}
	}
}

// sessionStore returns the caller's store and refreshes the session cookie
// whenever a new session had to be created.
func (s *Server) sessionStore(w http.ResponseWriter, r *http.Request) *session.Store {
	var current string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		current = cookie.Value
	}
	id, store := s.sessions.Acquire(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return store
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
