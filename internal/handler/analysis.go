package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farmsync/farmsync-api/internal/analysis"
	"github.com/farmsync/farmsync-api/internal/cache"
	"github.com/farmsync/farmsync-api/internal/model"
	"github.com/farmsync/farmsync-api/internal/queue"
)

// AnalysisStore is the audit-log surface the analysis handlers depend on.
// *repository.AnalysisRepo satisfies it.
type AnalysisStore interface {
	Insert(ctx context.Context, userID uint64, datasets []string, region string) (uint64, error)
	ListByUser(ctx context.Context, userID uint64, limit int) ([]model.AnalysisRequest, error)
}

// AnalysisHandler serves the dashboard analysis endpoint and its history.
// Reports is the pure report builder; it is a field so tests can observe
// what the handler feeds it. Publish sends the audit event to the broker
// and may be nil to disable publishing.
type AnalysisHandler struct {
	Audit   AnalysisStore
	Cache   *cache.ReportCache
	Publish func(ctx context.Context, ev queue.AnalysisRequestedEvent) error
}

func NewAnalysisHandler(audit AnalysisStore, rc *cache.ReportCache) *AnalysisHandler {
	return &AnalysisHandler{Audit: audit, Cache: rc, Publish: queue.PublishAnalysisRequested}
}

type analysisReq struct {
	Datasets []string `json:"datasets"`
	Region   string   `json:"region"`
}

// Analyze: validate the dataset selection, build (or fetch the cached)
// report, write the audit row, and hand the event to the broker. The audit
// insert runs on every request, cache hit or not; only the report build is
// skipped on a hit.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email, _ := c.Get("email").(string)
	userType, _ := c.Get("user_type").(string)

	var req analysisReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	datasets := make([]string, 0, len(req.Datasets))
	for _, d := range req.Datasets {
		if d = strings.TrimSpace(d); d != "" {
			datasets = append(datasets, d)
		}
	}
	if len(datasets) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one dataset must be selected"})
	}
	region := strings.TrimSpace(req.Region)
	if region == "" {
		region = analysis.RegionAll
	}
	if !analysis.KnownRegion(region) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown region"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	report, hit := h.Cache.Get(ctx, datasets, region)
	if !hit {
		report = analysis.BuildReport(datasets, region)
		h.Cache.Set(ctx, datasets, region, report)
	}

	reqID, err := h.Audit.Insert(ctx, uid, datasets, region)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate analysis"})
	}

	if h.Publish != nil {
		ev := queue.AnalysisRequestedEvent{
			RequestID:   reqID,
			UserID:      uid,
			Email:       email,
			UserType:    userType,
			Datasets:    datasets,
			Region:      region,
			RequestedAt: time.Now().UTC().Format(time.RFC3339),
		}
		// Fire and forget: broker trouble must not fail the request.
		go func() {
			pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pcancel()
			_ = h.Publish(pctx, ev)
		}()
	}

	if hit {
		c.Response().Header().Set("X-Cache", "HIT")
	}
	return c.JSON(http.StatusOK, report)
}

// History: return the caller's recent analysis requests, newest first. The
// optional ?limit= query parameter caps the page size.
func (h *AnalysisHandler) History(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit := 20
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Audit.ListByUser(ctx, uid, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": items})
}
