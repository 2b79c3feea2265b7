package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/report"
	"github.com/limbo/fittrack/internal/service"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
	"github.com/limbo/fittrack/pkg/httputil"
	"go.uber.org/zap"
)

const (
	defaultReportDays = 7
	requestTimeout    = 10 * time.Second
	syncTimeout       = 90 * time.Second
)

type IngestSamplesRequest struct {
	Samples []entity.HealthSample `json:"samples"`
}

type IngestSamplesResponse struct {
	Stored int64 `json:"stored"`
}

// writeServiceError maps service errors to a status code and logs them.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	var storageErr *errorvalues.StorageError
	switch {
	case errors.Is(err, errorvalues.ErrValidation), errors.Is(err, errorvalues.ErrInvalidRange),
		errors.Is(err, errorvalues.ErrNoSamples):
		logger.Error(op+" error: bad request", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, op+" failed: invalid input", err)
	case errors.Is(err, errorvalues.ErrRecordNotFound), errors.Is(err, errorvalues.ErrMealNotFound):
		logger.Error(op+" error: not found", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusNotFound, op+" failed: not found", nil)
	case errors.As(err, &storageErr):
		logger.Error(op+" error: storage error", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, op+" failed: storage error", nil)
	default:
		logger.Error(op+" error: service error", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while handling "+op, nil)
	}
}

func (s *Server) pathDay(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (time.Time, bool) {
	day, err := dayutil.ParseDay(chi.URLParam(r, "date"), s.loc)
	if err != nil {
		logger.Error("invalid day in path value", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid day in path value, expected "+dayutil.DayLayout, nil)
		return time.Time{}, false
	}
	return day, true
}

// queryRange reads from and to days. Missing values fall back to the given defaults.
func (s *Server) queryRange(w http.ResponseWriter, r *http.Request, logger *zap.Logger, defFrom, defTo time.Time) (time.Time, time.Time, bool) {
	values := []struct {
		key string
		def time.Time
	}{{"from", defFrom}, {"to", defTo}}
	out := make([]time.Time, 0, 2)
	for _, v := range values {
		raw := r.URL.Query().Get(v.key)
		if raw == "" {
			out = append(out, v.def)
			continue
		}
		day, err := dayutil.ParseDay(raw, s.loc)
		if err != nil {
			logger.Error("invalid range query", zap.String("key", v.key), zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid "+v.key+" query value, expected "+dayutil.DayLayout, nil)
			return time.Time{}, time.Time{}, false
		}
		out = append(out, day)
	}
	return out[0], out[1], true
}

func (s *Server) today() time.Time {
	return dayutil.StartOfDay(s.now().In(s.loc))
}

func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	day, ok := s.pathDay(w, r, logger)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.recordsService.GetDay(ctx, day)
	if err != nil {
		writeServiceError(w, logger, "get day", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
	logger.Info("day provided", zap.String("day", dayutil.FormatDay(day)))
}

func (s *Server) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	day, ok := s.pathDay(w, r, logger)
	if !ok {
		return
	}
	var req service.MetricsUpdate
	defer r.Body.Close()
	if err := httputil.ReadJSON(r, &req); err != nil {
		logger.Error("update metrics error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	record, err := s.recordsService.UpdateMetrics(ctx, day, &req)
	if err != nil {
		writeServiceError(w, logger, "update metrics", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, record)
	logger.Info("metrics updated", zap.String("day", dayutil.FormatDay(day)))
}

func (s *Server) AddMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	day, ok := s.pathDay(w, r, logger)
	if !ok {
		return
	}
	var req service.MealRequest
	defer r.Body.Close()
	if err := httputil.ReadJSON(r, &req); err != nil {
		logger.Error("add meal error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	meal, err := s.recordsService.AddMeal(ctx, day, &req)
	if err != nil {
		writeServiceError(w, logger, "add meal", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, meal)
	logger.Info("meal added", zap.String("meal_id", meal.ID.String()))
}

func (s *Server) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("meal deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid meal id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err = s.recordsService.DeleteMeal(ctx, id); err != nil {
		writeServiceError(w, logger, "delete meal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("meal deleted", zap.String("meal_id", id.String()))
}

func (s *Server) SyncDay(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	day, ok := s.pathDay(w, r, logger)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()
	outcome, err := s.reconcileService.ReconcileDay(ctx, day)
	if err != nil {
		writeServiceError(w, logger, "sync day", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, outcome)
	logger.Info("day synced", zap.String("day", dayutil.FormatDay(day)), zap.Bool("partial", outcome.Partial()))
}

// SyncRange reconciles from..to inclusive, or the auto sync window when both are missing.
func (s *Server) SyncRange(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()
	var (
		syncReport *entity.SyncReport
		err        error
	)
	query := r.URL.Query()
	if query.Get("from") == "" && query.Get("to") == "" {
		syncReport, err = s.reconcileService.AutoSync(ctx, 0)
	} else {
		today := s.today()
		from, to, ok := s.queryRange(w, r, logger, today, today)
		if !ok {
			return
		}
		syncReport, err = s.reconcileService.ReconcileRange(ctx, from, to)
	}
	if err != nil {
		// an interrupted sync still reports the days it completed
		if syncReport != nil && errors.Is(err, context.DeadlineExceeded) {
			logger.Error("range sync interrupted", zap.Error(err))
			httputil.WriteJSONResponse(w, http.StatusGatewayTimeout, syncReport)
			return
		}
		writeServiceError(w, logger, "sync range", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, syncReport)
	logger.Info("range synced", zap.Int("days", len(syncReport.Days)), zap.Int("failed", len(syncReport.Failed)))
}

// defaultReportRange is the last week including today, as a half open range.
func (s *Server) defaultReportRange() (time.Time, time.Time) {
	today := s.today()
	return dayutil.AddDays(today, -defaultReportDays), dayutil.NextDay(today)
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	defFrom, defTo := s.defaultReportRange()
	from, to, ok := s.queryRange(w, r, logger, defFrom, defTo)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	stats, err := s.statsService.RangeStats(ctx, from, to)
	if err != nil {
		writeServiceError(w, logger, "stats", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info("stats provided")
}

func (s *Server) GetInsights(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	insights, err := s.statsService.Insights(ctx)
	if err != nil {
		writeServiceError(w, logger, "insights", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, insights)
	logger.Info("insights provided")
}

func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	defFrom, defTo := s.defaultReportRange()
	from, to, ok := s.queryRange(w, r, logger, defFrom, defTo)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	rep, err := s.statsService.Report(ctx, from, to)
	if err != nil {
		writeServiceError(w, logger, "report", err)
		return
	}
	err = httputil.WriteTextResponse(w, http.StatusOK, func(out io.Writer) error {
		return report.Render(out, rep)
	})
	if err != nil {
		logger.Error("report rendering error", zap.Error(err))
		return
	}
	logger.Info("report provided", zap.Int("days", len(rep.Days)))
}

func (s *Server) IngestSamples(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req IngestSamplesRequest
	defer r.Body.Close()
	if err := httputil.ReadJSON(r, &req); err != nil {
		logger.Error("ingest samples error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()
	n, err := s.samplesService.Ingest(ctx, req.Samples)
	if err != nil {
		writeServiceError(w, logger, "ingest samples", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, IngestSamplesResponse{Stored: n})
	logger.Info("samples ingested", zap.Int64("stored", n))
}
