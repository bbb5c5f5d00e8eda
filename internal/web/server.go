// Package web serves the calendar JSON API, PDF printing and ICS export.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/layout"
	"github.com/brendondgr/Mango-Apps/internal/logger"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

const shutdownTimeout = 5 * time.Second

// Server provides the HTTP API over a calendar.Service.
type Server struct {
	svc *calendar.Service
	log *log.Logger
	mux *http.ServeMux

	// printView supplies the hour window when a print request omits one.
	printView layout.View
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithPrintHours sets the default hour window of printed schedules.
func WithPrintHours(start, end int) Option {
	return func(s *Server) {
		s.printView.StartHour = start
		s.printView.EndHour = end
	}
}

// NewServer constructs a new Server.
func NewServer(svc *calendar.Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		log:       logger.Discard(),
		mux:       http.NewServeMux(),
		printView: layout.View{StartHour: 0, EndHour: layout.HoursPerDay},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler wrapped with request IDs
// and request logging.
func (s *Server) Handler() http.Handler {
	return requestID(s.logRequests(s.mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", "listen", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/colors", s.handleColors)

	s.mux.HandleFunc("GET /api/schedules", s.handleListSchedules)
	s.mux.HandleFunc("POST /api/schedules", s.handleSaveSchedule)
	s.mux.HandleFunc("GET /api/schedules/{filename}", s.handleGetSchedule)
	s.mux.HandleFunc("DELETE /api/schedules/{filename}", s.handleDeleteSchedule)
	s.mux.HandleFunc("PUT /api/schedules/{filename}/color_mappings", s.handleColorMappings)
	s.mux.HandleFunc("POST /api/schedules/{filename}/events", s.handleAddEvent)
	s.mux.HandleFunc("PUT /api/schedules/{filename}/events/{index}", s.handleUpdateEvent)
	s.mux.HandleFunc("DELETE /api/schedules/{filename}/events/{index}", s.handleDeleteEvent)
	s.mux.HandleFunc("POST /api/schedules/{filename}/print", s.handlePrint)

	s.mux.HandleFunc("GET /api/calendar", s.handleCalendarConfig)
	s.mux.HandleFunc("GET /api/calendar/date/{date}", s.handleDate)
	s.mux.HandleFunc("GET /api/calendar/week", s.handleWeek)
	s.mux.HandleFunc("GET /api/calendar/range", s.handleRange)
	s.mux.HandleFunc("GET /api/calendar/range.ics", s.handleRangeICS)

	s.mux.HandleFunc("POST /api/calendar/entries", s.handleAddEntry)
	s.mux.HandleFunc("PUT /api/calendar/entries/{index}", s.handleUpdateEntry)
	s.mux.HandleFunc("DELETE /api/calendar/entries/{index}", s.handleDeleteEntry)

	s.mux.HandleFunc("POST /api/calendar/events", s.handleAddDirectEvent)
	s.mux.HandleFunc("PUT /api/calendar/events/{index}", s.handleUpdateDirectEvent)
	s.mux.HandleFunc("DELETE /api/calendar/events/{index}", s.handleDeleteDirectEvent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type messageResponse struct {
	Message string `json:"message"`
}

type indexResponse struct {
	Message string `json:"message"`
	Index   int    `json:"index"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write JSON response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case schedule.IsValidation(err), schedule.IsRange(err):
		return http.StatusBadRequest
	case errors.Is(err, schedule.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Server errors are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "err", err)
	}
	writeError(w, status, err.Error())
}

// requireJSON rejects requests whose body is not declared as JSON.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "application/json" {
		writeError(w, http.StatusBadRequest, "Content-Type must be application/json")
		return false
	}
	return true
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if !requireJSON(w, r) {
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

// pathIndex parses the {index} path segment. A non-integer index does
// not name any resource.
func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusNotFound, "index must be an integer")
		return 0, false
	}
	return idx, true
}
