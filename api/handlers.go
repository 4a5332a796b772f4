/*
handlers.go - HTTP API handlers for the delta engine

PURPOSE:
  Exposes the delta engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and store.

ENDPOINTS:
  Named deltas:
    GET    /api/deltas               List stored deltas
    POST   /api/deltas               Register a named delta
    GET    /api/deltas/{id}          Get a stored delta
    DELETE /api/deltas/{id}          Remove a stored delta
    POST   /api/deltas/{id}/apply    Apply a stored delta to a date
    POST   /api/deltas/{id}/convert  Express a stored delta in a unit

  Inline operations:
    POST   /api/apply     Apply an inline delta
    POST   /api/diff      Delta between two instants
    POST   /api/convert   Convert an inline delta

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Construction/validation errors, malformed dates
  - 404: Unknown delta id
  - 409: Duplicate delta id
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/delta-engine/calendar"
	"github.com/warp/delta-engine/factory"
	"github.com/warp/delta-engine/reldelta"
	"github.com/warp/delta-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// NAMED DELTA HANDLERS
// =============================================================================

// ListDeltas returns all stored deltas.
func (h *Handler) ListDeltas(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListDeltas(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list deltas", err)
		return
	}

	dtos := make([]DeltaDTO, 0, len(records))
	for _, rec := range records {
		dto, err := toDeltaDTO(rec)
		if err != nil {
			continue // Skip records with unreadable configs
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateDelta validates and stores a named delta.
func (h *Handler) CreateDelta(w http.ResponseWriter, r *http.Request) {
	var req CreateDeltaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Delta id is required", nil)
		return
	}

	// Reject invalid configs before they reach storage.
	if _, err := factory.FromJSON(req.Config); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid delta configuration", err)
		return
	}

	configJSON, err := json.Marshal(req.Config)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode configuration", err)
		return
	}

	existing, err := h.Store.GetDelta(r.Context(), req.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check delta", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, fmt.Sprintf("Delta %q already exists", req.ID), nil)
		return
	}

	rec := sqlite.DeltaRecord{
		ID:         req.ID,
		Name:       req.Name,
		ConfigJSON: string(configJSON),
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Store.SaveDelta(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save delta", err)
		return
	}

	dto, _ := toDeltaDTO(rec)
	writeJSON(w, http.StatusCreated, dto)
}

// GetDelta returns a single stored delta.
func (h *Handler) GetDelta(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadDelta(w, r)
	if !ok {
		return
	}
	dto, err := toDeltaDTO(*rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to decode stored config", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeleteDelta removes a stored delta.
func (h *Handler) DeleteDelta(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := h.Store.DeleteDelta(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete delta", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Delta not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyDelta applies a stored delta to the supplied date.
func (h *Handler) ApplyDelta(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadDelta(w, r)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	delta, err := factory.Parse(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored config no longer valid", err)
		return
	}

	tp, err := factory.ParseTimePoint(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	applicationsTotal.Inc()
	writeJSON(w, http.StatusOK, ApplyResponse{Result: delta.ApplyToDate(tp).String()})
}

// ConvertDelta expresses a stored delta in the requested unit.
func (h *Handler) ConvertDelta(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadDelta(w, r)
	if !ok {
		return
	}

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	delta, err := factory.Parse(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored config no longer valid", err)
		return
	}

	h.convert(w, delta, req.Unit, req.Reference)
}

// =============================================================================
// INLINE HANDLERS
// =============================================================================

// ApplyInline applies a request-supplied delta to a date.
func (h *Handler) ApplyInline(w http.ResponseWriter, r *http.Request) {
	var req ApplyInlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	delta, err := factory.FromJSON(req.Delta)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid delta configuration", err)
		return
	}

	tp, err := factory.ParseTimePoint(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	applicationsTotal.Inc()
	writeJSON(w, http.StatusOK, ApplyResponse{Result: delta.ApplyToDate(tp).String()})
}

// DiffDates returns the delta between two instants.
func (h *Handler) DiffDates(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date1, err := factory.ParseTimePoint(req.Date1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date1", err)
		return
	}
	date2, err := factory.ParseTimePoint(req.Date2)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date2", err)
		return
	}

	delta := reldelta.Diff(date1, date2, reldelta.DiffOptions{CountLeapDays: req.CountLeapDays})
	diffsTotal.Inc()
	writeJSON(w, http.StatusOK, DiffResponse{Delta: factory.ToJSON(delta)})
}

// ConvertInline converts a request-supplied delta.
func (h *Handler) ConvertInline(w http.ResponseWriter, r *http.Request) {
	var req ConvertInlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	delta, err := factory.FromJSON(req.Delta)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid delta configuration", err)
		return
	}

	h.convert(w, delta, req.Unit, req.Reference)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (h *Handler) loadDelta(w http.ResponseWriter, r *http.Request) (*sqlite.DeltaRecord, bool) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetDelta(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load delta", err)
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Delta not found", nil)
		return nil, false
	}
	return rec, true
}

func (h *Handler) convert(w http.ResponseWriter, delta *reldelta.Delta, unit, reference string) {
	var refs []calendar.TimePoint
	if reference != "" {
		tp, err := factory.ParseTimePoint(reference)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid reference date", err)
			return
		}
		refs = append(refs, tp)
	}

	var value float64
	switch unit {
	case "seconds":
		value = delta.ToSeconds(refs...)
	case "milliseconds":
		value = delta.ToMilliseconds(refs...)
	case "minutes":
		value = delta.ToMinutes(refs...)
	case "hours":
		value = delta.ToHours(refs...)
	case "days":
		value = delta.ToDays(refs...)
	case "weeks":
		value = delta.ToWeeks(refs...)
	case "months":
		value = delta.ToMonths(refs...)
	case "years":
		value = delta.ToYears(refs...)
	default:
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown unit %q (want seconds, milliseconds, minutes, hours, days, weeks, months or years)", unit), nil)
		return
	}

	conversionsTotal.Inc()
	writeJSON(w, http.StatusOK, ConvertResponse{Unit: unit, Value: value})
}

func toDeltaDTO(rec sqlite.DeltaRecord) (DeltaDTO, error) {
	var config factory.DeltaJSON
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &config); err != nil {
		return DeltaDTO{}, err
	}
	return DeltaDTO{
		ID:        rec.ID,
		Name:      rec.Name,
		Config:    config,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
