package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/budget-service/internal/export"
	"github.com/Dan9191/budget-service/internal/forecast"
	"github.com/Dan9191/budget-service/internal/metrics"
	"github.com/Dan9191/budget-service/internal/middleware"
	"github.com/Dan9191/budget-service/internal/repository"
	"github.com/Dan9191/budget-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Forecast handles the cash flow projection report
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	householdID, ok := h.household(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	p, err := h.svc.ParseForecastParams(q.Get("start_date"), q.Get("months_to_project"), q.Get("buffer"))
	if err != nil {
		h.writeError(w, r, err, "Failed to generate forecast")
		return
	}

	res, err := h.svc.Forecast(r.Context(), householdID, p)
	if err != nil {
		h.writeError(w, r, err, "Failed to generate forecast")
		return
	}
	writeJSON(w, http.StatusOK, res.Response())
}

// ExportForecast renders the forecast as an xlsx, pdf or xml download
func (h *Handler) ExportForecast(w http.ResponseWriter, r *http.Request) {
	householdID, ok := h.household(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		h.writeError(w, r, err, "Failed to export forecast")
		return
	}
	p, err := h.svc.ParseForecastParams(q.Get("start_date"), q.Get("months_to_project"), q.Get("buffer"))
	if err != nil {
		h.writeError(w, r, err, "Failed to export forecast")
		return
	}

	res, err := h.svc.Forecast(r.Context(), householdID, p)
	if err != nil {
		h.writeError(w, r, err, "Failed to export forecast")
		return
	}

	start := time.Now()
	doc := export.NewDocument(householdID, res)
	data, err := export.Render(format, doc)
	metrics.ObserveExport(string(format), metrics.ResultFor(err), time.Since(start))
	if err != nil {
		h.writeError(w, r, err, "Failed to export forecast")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// UpcomingBills handles the bill schedule report
func (h *Handler) UpcomingBills(w http.ResponseWriter, r *http.Request) {
	householdID, ok := h.household(w, r)
	if !ok {
		return
	}

	days, err := forecast.ParseDays(r.URL.Query().Get("days"), forecast.DefaultScheduleDays)
	if err != nil {
		h.writeError(w, r, err, "Failed to get upcoming bills")
		return
	}

	schedule, err := h.svc.UpcomingBills(r.Context(), householdID, h.svc.Today(), days)
	if err != nil {
		h.writeError(w, r, err, "Failed to get upcoming bills")
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// Summary handles the household overview report
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	householdID, ok := h.household(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Summary(r.Context(), householdID)
	if err != nil {
		h.writeError(w, r, err, "Failed to generate summary")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// FinancialHealth handles the financial health report
func (h *Handler) FinancialHealth(w http.ResponseWriter, r *http.Request) {
	householdID, ok := h.household(w, r)
	if !ok {
		return
	}

	report, err := h.svc.FinancialHealth(r.Context(), householdID)
	if err != nil {
		h.writeError(w, r, err, "Failed to generate financial health report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ProcessRecurring applies the due recurring deposits of the household
func (h *Handler) ProcessRecurring(w http.ResponseWriter, r *http.Request) {
	householdID, ok := h.household(w, r)
	if !ok {
		return
	}

	run, err := h.svc.ProcessRecurringDeposits(r.Context(), householdID)
	if err != nil {
		h.writeError(w, r, err, "Failed to process recurring deposits")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ToggleSkip flips whether the next recurring deposit of a fund is skipped
func (h *Handler) ToggleSkip(w http.ResponseWriter, r *http.Request) {
	householdID, ok := h.household(w, r)
	if !ok {
		return
	}

	fundID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || fundID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid fund id"})
		return
	}

	fund, err := h.svc.ToggleSkip(r.Context(), householdID, fundID)
	if err != nil {
		h.writeError(w, r, err, "Failed to update fund")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Skip next deposit set to %t", fund.SkipNext),
		"fund":    fund,
	})
}

func (h *Handler) household(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.HouseholdIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
	}
	return id, ok
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps invalid parameters to 400 and missing rows to 404. Anything
// else is logged and reported as 500 with the fallback message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, forecast.ErrInvalidParameter):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	default:
		id, _ := middleware.HouseholdIDFromContext(r.Context())
		h.log.WithFields(logrus.Fields{
			"household_id": id,
			"subject":      middleware.SubjectFromContext(r.Context()),
			"path":         r.URL.Path,
		}).WithError(err).Error(fallback)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: fallback})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
