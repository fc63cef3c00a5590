package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-trends-dashboard/internal/catalog"
	"movie-trends-dashboard/internal/models"
	"movie-trends-dashboard/internal/predictor"
	"movie-trends-dashboard/internal/service"
)

// DashboardHandler serves the analytics view models and the success
// predictor.
type DashboardHandler struct {
	svc  *service.DashboardService
	pred *predictor.Predictor
}

// NewDashboardHandler creates a new DashboardHandler. pred may be nil when
// the model artifacts failed to load; the predict endpoint then reports
// unavailable instead of the whole service failing.
func NewDashboardHandler(svc *service.DashboardService, pred *predictor.Predictor) *DashboardHandler {
	return &DashboardHandler{svc: svc, pred: pred}
}

// GlobalTrends returns the global trends view model.
func (h *DashboardHandler) GlobalTrends(c fiber.Ctx) error {
	params, err := trendsParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid query parameters"})
	}
	return c.JSON(h.svc.GlobalTrends(params))
}

// GenreBreakdown returns the per-country genre donut.
func (h *DashboardHandler) GenreBreakdown(c fiber.Ctx) error {
	params, err := trendsParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid query parameters"})
	}

	country := c.Query("country")
	if country == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "country is required"})
	}
	return c.JSON(h.svc.GenreBreakdown(params, country))
}

// TitlesOverTime returns distinct titles added per month per type.
func (h *DashboardHandler) TitlesOverTime(c fiber.Ctx) error {
	params, err := trendsParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid query parameters"})
	}
	return c.JSON(h.svc.TitlesOverTime(params))
}

// GrossEarnings returns the gross earnings view model.
func (h *DashboardHandler) GrossEarnings(c fiber.Ctx) error {
	var params models.GrossEarningsParams
	if err := c.Bind().Query(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid query parameters"})
	}
	params.Genres = catalog.SplitMultiValued(c.Query("genres"))

	return c.JSON(h.svc.GrossEarnings(params))
}

// PredictorGenres lists the genre options for the prediction form.
func (h *DashboardHandler) PredictorGenres(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"genres": h.svc.PredictorGenres()})
}

// Predict classifies a movie as Hit, Flop or Average.
func (h *DashboardHandler) Predict(c fiber.Ctx) error {
	if h.pred == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{Error: "predictor model is not loaded"})
	}

	var req models.PredictRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}

	success, err := h.pred.Predict(req.RuntimeMinutes, req.MetaScore, req.ReleasedYear, req.Genre)
	if err != nil {
		slog.Error("prediction failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "prediction failed"})
	}
	return c.JSON(models.PredictResponse{Success: success})
}

// trendsParams binds the tagged query fields, then splits the comma-list
// multiselect parameters the same way multi-valued catalog cells split.
func trendsParams(c fiber.Ctx) (models.GlobalTrendsParams, error) {
	var params models.GlobalTrendsParams
	if err := c.Bind().Query(&params); err != nil {
		return params, err
	}
	params.Types = catalog.SplitMultiValued(c.Query("types"))
	params.RatingCategories = catalog.SplitMultiValued(c.Query("rating_categories"))
	params.Countries = catalog.SplitMultiValued(c.Query("countries"))
	return params, nil
}
