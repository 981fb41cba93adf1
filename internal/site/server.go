// Package site serves the published totals artifact and a small HTML
// dashboard that renders it. Read-only: the site never triggers a pipeline
// run.
package site

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"tally/internal/emit"
	applog "tally/internal/log"
	"tally/internal/storage"
	appweb "tally/web"
)

type Server struct {
	http.Server
	artifactPath string
	history      *storage.Repository // optional fallback when the artifact is missing
	templates    *template.Template
	logger       *applog.Logger
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr, artifactPath string, history *storage.Repository) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		artifactPath: artifactPath,
		history:      history,
		logger:       applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentSite),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/totals.json", s.handleTotals)
	mux.HandleFunc("/runs.json", s.handleRuns)

	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", nil); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed rendering dashboard", applog.FieldError, err)
	}
}

// handleTotals serves the published artifact verbatim. When no artifact has
// been written yet it falls back to the most recent run in the history DB.
func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := os.ReadFile(s.artifactPath)
	if err != nil {
		data = nil
		if s.history != nil {
			totals, ok, herr := s.history.LatestTotals(r.Context())
			if herr != nil {
				s.logger.ErrorContext(r.Context(), "Failed reading run history", applog.FieldError, herr)
			} else if ok {
				data, _ = emit.Marshal(totals)
			}
		}
	}
	if data == nil {
		http.Error(w, "no totals published yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

type runResponse struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.history == nil {
		http.Error(w, "run history unavailable", http.StatusNotFound)
		return
	}

	runs, err := s.history.Runs(r.Context(), 20)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed listing runs", applog.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]runResponse, 0, len(runs))
	for _, rec := range runs {
		out = append(out, runResponse{
			ID:        rec.ID,
			Source:    rec.Source,
			RowCount:  rec.RowCount,
			CreatedAt: rec.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed encoding runs", applog.FieldError, err)
	}
}
