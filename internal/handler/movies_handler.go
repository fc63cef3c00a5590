package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-trends-dashboard/internal/models"
	"movie-trends-dashboard/internal/service"
)

// MoviesHandler serves the movie-metadata browsing endpoints.
type MoviesHandler struct {
	svc *service.MoviesService
}

// NewMoviesHandler creates a new MoviesHandler.
func NewMoviesHandler(svc *service.MoviesService) *MoviesHandler {
	return &MoviesHandler{svc: svc}
}

// Popular returns a page of popular movies.
func (h *MoviesHandler) Popular(c fiber.Ctx) error {
	page := fiber.Query(c, "page", 1)
	return c.JSON(fiber.Map{
		"page":    page,
		"results": h.svc.Popular(page),
	})
}

// Search searches movies by free-text query.
func (h *MoviesHandler) Search(c fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "query is required"})
	}
	page := fiber.Query(c, "page", 1)

	return c.JSON(fiber.Map{
		"page":        page,
		"query":       query,
		"results":     h.svc.Search(query, page),
		"suggestions": h.svc.Suggestions(query),
	})
}

// Detail returns the detailed record for one movie.
func (h *MoviesHandler) Detail(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid movie ID"})
	}

	detail, err := h.svc.Detail(id)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{Error: "movie detail unavailable"})
	}
	return c.JSON(detail)
}

// Suggestions returns up to three partial-match title suggestions.
func (h *MoviesHandler) Suggestions(c fiber.Ctx) error {
	query := c.Query("query")
	return c.JSON(fiber.Map{"suggestions": h.svc.Suggestions(query)})
}
