package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/selector"
	"github.com/conorfennell/namepick/internal/session"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server.
type Server struct {
	session   *session.Session
	router    *http.ServeMux
	templates *template.Template
}

// NewServer creates and configures a new server.
func NewServer(sess *session.Session) (*Server, error) {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		session:   sess,
		router:    http.NewServeMux(),
		templates: tpl,
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return err
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("GET /static/", http.StripPrefix("/static/", fileServer))
	s.router.HandleFunc("GET /{$}", s.handleIndex())

	// HTMX-based routes
	s.router.HandleFunc("GET /candidate", s.handleGetCandidate())
	s.router.HandleFunc("POST /decide", s.handlePostDecide())
	s.router.HandleFunc("GET /accepted", s.handleGetAccepted())
	s.router.HandleFunc("POST /save", s.handlePostSave())
	s.router.HandleFunc("GET /stats", s.handleGetStats())
	return nil
}

// reviewView is the data every template renders from.
type reviewView struct {
	Remaining  int
	HasCurrent bool
	Current    string
	Unsaved    int
	Accepted   []string
}

func (s *Server) view() reviewView {
	stats := s.session.Stats()
	v := reviewView{
		Remaining:  stats.Remaining,
		HasCurrent: stats.Current != "",
		Current:    stats.Current,
		Unsaved:    stats.Unsaved,
	}
	for _, p := range s.session.Accepted() {
		v.Accepted = append(v.Accepted, p.String())
	}
	return v
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Error rendering template", "template", name, "error", err)
	}
}

// handleIndex renders the full review page.
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "index", s.view())
	}
}

// handleGetCandidate renders the pair on offer.
func (s *Server) handleGetCandidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "candidate", s.view())
	}
}

// handlePostDecide applies a decision and renders the next candidate plus the
// refreshed accepted list.
func (s *Server) handlePostDecide() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := domain.ParseOutcome(r.PostFormValue("outcome"))
		if err != nil {
			http.Error(w, "Invalid outcome", http.StatusBadRequest)
			return
		}

		var decided domain.Pair
		if raw := r.PostFormValue("pair"); raw != "" {
			var pair domain.Pair
			pair, err = domain.ParsePair(raw)
			if err != nil {
				http.Error(w, "Invalid pair", http.StatusBadRequest)
				return
			}
			decided, err = s.session.DecidePair(pair, outcome)
		} else {
			decided, err = s.session.Decide(outcome)
		}
		if err != nil {
			if errors.Is(err, selector.ErrNothingOffered) {
				http.Error(w, "Nothing left to review", http.StatusConflict)
				return
			}
			slog.Warn("Rejected decision", "pair", r.PostFormValue("pair"), "error", err)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		slog.Info("Decision recorded", "pair", decided.String(), "outcome", outcome.String())

		v := s.view()
		s.render(w, "candidate", v)
		s.render(w, "accepted_oob", v)
	}
}

// handleGetAccepted renders the accepted names.
func (s *Server) handleGetAccepted() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "accepted_list", s.view())
	}
}

// handlePostSave writes the decisions to the store.
func (s *Server) handlePostSave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.session.Save(r.Context()); err != nil {
			slog.Error("Error saving decisions", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, "save_success", s.view())
	}
}

// handleGetStats returns the session counters as JSON.
func (s *Server) handleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.session.Stats()); err != nil {
			slog.Error("Error encoding stats", "error", err)
		}
	}
}
