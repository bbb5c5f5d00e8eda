package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// defaultScheduleFilename names uploads that do not carry a filename.
const defaultScheduleFilename = "new_schedule.json"

func (s *Server) handleColors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, palette.Colors)
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.ListSchedules(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.ScheduleView(r.Context(), r.PathValue("filename"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleSaveSchedule accepts either {"filename": ..., "data": {...}} or a
// bare schedule document.
func (s *Server) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reading body: %v", err))
		return
	}

	var envelope struct {
		Filename string          `json:"filename"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule data: root must be a JSON object")
		return
	}
	filename := envelope.Filename
	if filename == "" {
		filename = defaultScheduleFilename
	}
	doc := body
	if len(envelope.Data) > 0 {
		doc = envelope.Data
	}

	sched, err := schedule.DecodeSchedule(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule data: "+err.Error())
		return
	}
	saved, err := s.svc.SaveSchedule(r.Context(), filename, sched)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Message  string `json:"message"`
		Filename string `json:"filename"`
	}{"Schedule saved", saved})
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.DeleteSchedule(r.Context(), r.PathValue("filename"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success         bool   `json:"success"`
		Message         string `json:"message"`
		RemovedMappings int    `json:"removed_mappings"`
	}{true, "Schedule deleted", removed})
}

func (s *Server) handleColorMappings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ColorMappings map[string]string `json:"color_mappings"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ColorMappings == nil {
		writeError(w, http.StatusBadRequest, "color_mappings required")
		return
	}
	if err := s.svc.UpdateColorMappings(r.Context(), r.PathValue("filename"), body.ColorMappings); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Color mappings updated"})
}

// readTemplate decodes an event template body.
func readTemplate(w http.ResponseWriter, r *http.Request) (schedule.EventTemplate, bool) {
	var raw json.RawMessage
	if !decodeBody(w, r, &raw) {
		return nil, false
	}
	t, err := schedule.DecodeTemplate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return t, true
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	t, ok := readTemplate(w, r)
	if !ok {
		return
	}
	idx, err := s.svc.AddEvent(r.Context(), r.PathValue("filename"), t)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, indexResponse{Message: "Event added", Index: idx})
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	t, ok := readTemplate(w, r)
	if !ok {
		return
	}
	if err := s.svc.UpdateEvent(r.Context(), r.PathValue("filename"), idx, t); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Event updated"})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteEvent(r.Context(), r.PathValue("filename"), idx); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Event deleted"})
}

// printRequest is the body of a print request. Missing fields fall back
// to the server's defaults.
type printRequest struct {
	TimeRange *struct {
		StartHour *int `json:"startHour"`
		EndHour   *int `json:"endHour"`
	} `json:"timeRange"`
	DaysRange        []int    `json:"daysRange"`
	HiddenCategories []string `json:"hiddenCategories"`
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var body printRequest
	if !decodeBody(w, r, &body) {
		return
	}

	view := s.printView
	if body.TimeRange != nil {
		if body.TimeRange.StartHour != nil {
			view.StartHour = *body.TimeRange.StartHour
		}
		if body.TimeRange.EndHour != nil {
			view.EndHour = *body.TimeRange.EndHour
		}
	}
	view.Days = body.DaysRange
	view.Hidden = body.HiddenCategories

	data, filename, err := s.svc.PrintSchedule(r.Context(), r.PathValue("filename"), view)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
