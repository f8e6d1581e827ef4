package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/strata/internal/consolidate"
	"github.com/MikeSquared-Agency/strata/internal/report"
)

// Server exposes the latest mining report over HTTP. The report is read
// from disk per request, so a rerun updates what the server hands out
// without a restart.
type Server struct {
	router     *chi.Mux
	port       int
	reportPath string
	logger     *slog.Logger
}

func NewServer(port int, reportPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:     router,
		port:       port,
		reportPath: reportPath,
		logger:     logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/status", s.status)
	router.Get("/api/v1/report", s.fullReport)
	router.Get("/api/v1/report/summary", s.reportSummary)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr, "report", s.reportPath)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	reportState := "absent"
	if _, err := os.Stat(s.reportPath); err == nil {
		reportState = "present"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"service": "strata",
		"report":  reportState,
	})
}

func (s *Server) fullReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rep)
}

type summaryResponse struct {
	RunID         string            `json:"run_id"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Source        string            `json:"source"`
	Conversations int               `json:"conversations"`
	Messages      int               `json:"messages"`
	Occurrences   int               `json:"occurrences"`
	Relations     int               `json:"relations"`
	ProblemPairs  int               `json:"problem_pairs"`
	TopRules      map[string]string `json:"top_rules"`
}

func (s *Server) reportSummary(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w)
	if !ok {
		return
	}

	top := make(map[string]string, len(rep.Taxonomies))
	for _, tax := range rep.Taxonomies {
		if len(tax.Rules) > 0 {
			top[tax.Taxonomy] = tax.Rules[0].RuleID
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summaryResponse{
		RunID:         rep.RunID,
		GeneratedAt:   rep.GeneratedAt,
		Source:        rep.Source,
		Conversations: rep.Stats.Conversations,
		Messages:      rep.Stats.MessagesDecoded,
		Occurrences:   rep.Stats.Occurrences,
		Relations:     rep.Stats.Relations,
		ProblemPairs:  rep.Stats.ProblemPairs,
		TopRules:      top,
	})
}

// loadReport reads the current report, writing the error response itself
// when there is nothing to serve.
func (s *Server) loadReport(w http.ResponseWriter) (*consolidate.Report, bool) {
	rep, err := report.ReadJSON(s.reportPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, `{"error":"no report generated yet"}`, http.StatusNotFound)
			return nil, false
		}
		s.logger.Error("failed to load report", "path", s.reportPath, "error", err)
		http.Error(w, `{"error":"report unreadable"}`, http.StatusInternalServerError)
		return nil, false
	}
	return rep, true
}
