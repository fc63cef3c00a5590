package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-trends-dashboard/internal/middleware"
	"movie-trends-dashboard/internal/models"
	"movie-trends-dashboard/internal/service"
)

// ChecklistHandler serves the checklist and notification endpoints.
type ChecklistHandler struct {
	svc *service.UserService
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(svc *service.UserService) *ChecklistHandler {
	return &ChecklistHandler{svc: svc}
}

// GetChecklist returns the caller's checklist.
func (h *ChecklistHandler) GetChecklist(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)

	checklist, err := h.svc.Checklist(username)
	if err != nil {
		slog.Error("failed to get checklist", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to get checklist"})
	}
	return c.JSON(checklist)
}

// AddEntry adds a movie to the caller's checklist.
func (h *ChecklistHandler) AddEntry(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)

	var req models.AddChecklistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}

	if err := h.svc.AddChecklistEntry(username, req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{Message: "added to checklist"})
}

// UpdateEntry flips the watched flag and/or sets the user rating.
func (h *ChecklistHandler) UpdateEntry(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)
	movieID := c.Params("id")

	var req models.UpdateChecklistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}

	if err := h.svc.UpdateChecklistEntry(username, movieID, req); err != nil {
		switch err {
		case service.ErrEntryNotFound:
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: err.Error()})
		case service.ErrInvalidUserRating:
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to update checklist entry", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to update entry"})
		}
	}
	return c.JSON(models.MessageResponse{Message: "entry updated"})
}

// RemoveEntry deletes a checklist entry.
func (h *ChecklistHandler) RemoveEntry(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)
	movieID := c.Params("id")

	if err := h.svc.RemoveChecklistEntry(username, movieID); err != nil {
		if err == service.ErrEntryNotFound {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to remove checklist entry", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to remove entry"})
	}
	return c.JSON(models.MessageResponse{Message: "entry removed"})
}

// ShareEntry sends a checklist entry to another user as a notification.
func (h *ChecklistHandler) ShareEntry(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)
	movieID := c.Params("id")

	var req models.ShareRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}

	if err := h.svc.ShareChecklistEntry(username, movieID, req.To); err != nil {
		switch err {
		case service.ErrEntryNotFound, service.ErrShareTargetMissing:
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: err.Error()})
		case service.ErrSelfShare:
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to share checklist entry", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to share entry"})
		}
	}
	return c.JSON(models.MessageResponse{Message: "entry shared"})
}

// GetNotifications returns the caller's notifications.
func (h *ChecklistHandler) GetNotifications(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)

	notifications, err := h.svc.Notifications(username)
	if err != nil {
		slog.Error("failed to get notifications", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to get notifications"})
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return c.JSON(notifications)
}

// MarkNotificationsRead marks every notification read.
func (h *ChecklistHandler) MarkNotificationsRead(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)

	if err := h.svc.MarkNotificationsRead(username); err != nil {
		slog.Error("failed to mark notifications read", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to mark notifications"})
	}
	return c.JSON(models.MessageResponse{Message: "notifications marked read"})
}

// ClearNotifications removes every notification.
func (h *ChecklistHandler) ClearNotifications(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)

	if err := h.svc.ClearNotifications(username); err != nil {
		slog.Error("failed to clear notifications", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to clear notifications"})
	}
	return c.JSON(models.MessageResponse{Message: "notifications cleared"})
}
