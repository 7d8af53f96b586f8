// Package server exposes a small operational HTTP surface: a health
// check and on-demand report previews rendered without sending mail.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/budgetbot/ynab-reporter/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server serves report previews over HTTP.
type Server struct {
	svc      *service.Service
	renderer service.Renderer
	log      *logrus.Logger
}

// NewServer initializes a new preview server.
func NewServer(svc *service.Service, renderer service.Renderer, log *logrus.Logger) *Server {
	return &Server{svc: svc, renderer: renderer, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.HandleFunc("/reports/{type}/preview", s.preview).Methods("GET")
	return r
}

// health probes YNAB connectivity by listing the budget's accounts.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	count, err := s.svc.OpenAccountCount()
	if err != nil {
		s.log.Errorf("Health check failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "open_accounts": count})
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	reportType := mux.Vars(r)["type"]

	var html string
	var err error
	switch reportType {
	case "daily":
		daily, buildErr := s.svc.DailyReport()
		if buildErr == nil {
			html, err = s.renderer.RenderDaily(daily)
		} else {
			err = buildErr
		}
	case "weekly":
		weekly, buildErr := s.svc.WeeklyReport()
		if buildErr == nil {
			html, err = s.renderer.RenderWeekly(weekly)
		} else {
			err = buildErr
		}
	case "monthly":
		monthly, buildErr := s.svc.MonthlyReport()
		if buildErr == nil {
			html, err = s.renderer.RenderMonthly(monthly)
		} else {
			err = buildErr
		}
	default:
		http.Error(w, fmt.Sprintf("unknown report type %q", reportType), http.StatusNotFound)
		return
	}

	if err != nil {
		s.log.Errorf("Failed to preview %s report: %v", reportType, err)
		http.Error(w, fmt.Sprintf("failed to build %s report: %v", reportType, err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}
