package reports

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/serenaspa/massoterapia-platform/internal/observability/metrics"
	"github.com/serenaspa/massoterapia-platform/internal/store"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// defaultPeriodDays matches the report screen's default lookback window.
const defaultPeriodDays = 30

// Handler serves canned reports over HTTP.
type Handler struct {
	store   *store.Store
	metrics *metrics.ReportMetrics
	logger  *logging.Logger
}

// NewHandler creates a reports HTTP handler.
func NewHandler(st *store.Store, m *metrics.ReportMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:   st,
		metrics: m,
		logger:  logger,
	}
}

// GetReport returns one report view.
// GET /admin/reports/{reportType}?period=30
// period is the lookback window in days (default 30).
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportType := chi.URLParam(r, "reportType")

	period := defaultPeriodDays
	if p := r.URL.Query().Get("period"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			http.Error(w, `{"error": "period must be a positive number of days"}`, http.StatusBadRequest)
			return
		}
		period = n
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -period)

	report := Generate(reportType, h.store.Snapshot(), cutoff)
	if report == nil {
		h.metrics.ObserveGenerated(reportType, "unknown")
		http.Error(w, `{"error": "unknown report type"}`, http.StatusNotFound)
		return
	}
	h.metrics.ObserveGenerated(reportType, "ok")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Error("reports: failed to encode report", "report_type", reportType, "error", err)
	}
}
