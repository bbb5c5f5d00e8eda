package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/brendondgr/Mango-Apps/internal/ics"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

func (s *Server) handleCalendarConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.CalendarConfig(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if cfg.Entries == nil {
		cfg.Entries = []schedule.CalendarEntry{}
	}
	if cfg.DirectEvents == nil {
		cfg.DirectEvents = []schedule.DirectEvent{}
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleDate(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Day(r.Context(), r.PathValue("date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Week(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.svc.Range(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleRangeICS exports a range as iCalendar. With recurring=true each
// scheduled slot becomes one weekly rule instead of one event per date.
func (s *Server) handleRangeICS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "start and end parameters required")
		return
	}
	recurring, _ := strconv.ParseBool(q.Get("recurring"))
	opts := ics.Options{Name: "mango-calendar"}

	var (
		doc string
		err error
	)
	if recurring {
		ranges, direct, rerr := s.svc.ScheduledRanges(r.Context(), start, end)
		if rerr != nil {
			s.fail(w, r, rerr)
			return
		}
		doc, err = ics.ExportRecurring(ranges, direct, opts)
	} else {
		view, rerr := s.svc.Range(r.Context(), start, end)
		if rerr != nil {
			s.fail(w, r, rerr)
			return
		}
		doc, err = ics.Export(view, opts)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("calendar_%s_%s.ics", start, end)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// readEntry decodes a calendar entry body. All three fields are required.
func readEntry(w http.ResponseWriter, r *http.Request) (schedule.CalendarEntry, bool) {
	var e schedule.CalendarEntry
	if !decodeBody(w, r, &e) {
		return e, false
	}
	if e.StartDate == "" || e.EndDate == "" || e.ScheduleFilename == "" {
		writeError(w, http.StatusBadRequest, "start_date, end_date, and schedule_filename required")
		return e, false
	}
	return e, true
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := readEntry(w, r)
	if !ok {
		return
	}
	idx, err := s.svc.AddEntry(r.Context(), e)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, indexResponse{Message: "Calendar entry added", Index: idx})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	e, ok := readEntry(w, r)
	if !ok {
		return
	}
	if err := s.svc.UpdateEntry(r.Context(), idx, e); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Calendar entry updated"})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteEntry(r.Context(), idx); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Calendar entry deleted"})
}

// readDirectEvent decodes and validates a direct event body.
func readDirectEvent(w http.ResponseWriter, r *http.Request) (schedule.DirectEvent, bool) {
	var raw json.RawMessage
	if !decodeBody(w, r, &raw) {
		return schedule.DirectEvent{}, false
	}
	d, err := schedule.DecodeDirectEvent(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return schedule.DirectEvent{}, false
	}
	return d, true
}

func (s *Server) handleAddDirectEvent(w http.ResponseWriter, r *http.Request) {
	d, ok := readDirectEvent(w, r)
	if !ok {
		return
	}
	idx, err := s.svc.AddDirectEvent(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, indexResponse{Message: "Direct event added", Index: idx})
}

func (s *Server) handleUpdateDirectEvent(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	d, ok := readDirectEvent(w, r)
	if !ok {
		return
	}
	if err := s.svc.UpdateDirectEvent(r.Context(), idx, d); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Direct event updated"})
}

func (s *Server) handleDeleteDirectEvent(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteDirectEvent(r.Context(), idx); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Direct event deleted"})
}
