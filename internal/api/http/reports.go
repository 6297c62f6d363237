package http

import (
	"net/http"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Donations(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	q := r.URL.Query()

	filter := service.ReportFilter{Category: q.Get("category")}
	var err error
	if filter.From, err = parseDate(q.Get("from")); err != nil {
		writeError(w, err)
		return
	}
	if filter.To, err = parseDate(q.Get("to")); err != nil {
		writeError(w, err)
		return
	}
	// An inclusive end date covers the whole day.
	if !filter.To.IsZero() {
		filter.To = filter.To.Add(24*time.Hour - time.Nanosecond)
	}

	report, err := h.reports.DonationReport(r.Context(), p, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.Ef(domain.InvalidArgument, "invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}
