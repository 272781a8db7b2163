package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/awardsearch/internal/aggregator"
	"github.com/dharmasatrya/awardsearch/internal/award"
	"github.com/dharmasatrya/awardsearch/internal/enrichment"
	"github.com/dharmasatrya/awardsearch/internal/evaluator"
	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/observability"
	"github.com/dharmasatrya/awardsearch/pkg/currency"
)

type AwardHandler struct {
	aggregator   *aggregator.Aggregator
	perMileValue float64
	metrics      *observability.Collector
}

func NewAwardHandler(agg *aggregator.Aggregator, perMileValue float64, metrics *observability.Collector) *AwardHandler {
	return &AwardHandler{
		aggregator:   agg,
		perMileValue: perMileValue,
		metrics:      metrics,
	}
}

func (h *AwardHandler) Evaluate(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(h.perMileValue); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	fetched := h.aggregator.FetchAll(ctx, req.Itinerary.Carriers())

	batches := make(map[string][]enrichment.Record, len(fetched.Batches))
	skipped := 0
	for carrier, raws := range fetched.Batches {
		records, n := enrichment.DecodeBatch(raws)
		batches[carrier] = records
		skipped += n
	}
	h.metrics.AddSkippedRecords(skipped)

	resp := evaluator.Evaluate(req.Itinerary, batches, evaluator.OptionsFromRequest(req))
	resp.CashPrice.Formatted = currency.Format(resp.CashPrice.Amount, resp.CashPrice.Currency)
	resp.Metadata = models.EvaluationMetadata{
		CarriersQueried:   fetched.CarriersQueried,
		CarriersSucceeded: fetched.CarriersSucceeded,
		FailedCarriers:    fetched.FailedCarriers,
		CacheHits:         fetched.CacheHits,
		RecordsSkipped:    skipped,
		SearchTimeMs:      time.Since(startTime).Milliseconds(),
	}
	h.metrics.ObserveEvaluation(time.Since(startTime), resp.Beatable)

	return c.JSON(http.StatusOK, resp)
}

func (h *AwardHandler) MileagePrograms(c echo.Context) error {
	var req models.MileageProgramsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(h.perMileValue); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	return c.JSON(http.StatusOK, models.MileageProgramsResponse{
		PerMileValue: req.PerMileValue,
		Programs:     evaluator.ValuePrograms(&req.Breakdown, req.PerMileValue),
	})
}

func (h *AwardHandler) CodeShares(c echo.Context) error {
	var req models.CodeShareRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	groups := award.CodeShareGroups(req.Itineraries)
	if groups == nil {
		groups = [][]models.Itinerary{}
	}
	return c.JSON(http.StatusOK, models.CodeShareResponse{Groups: groups})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func badRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
