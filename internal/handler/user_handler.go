package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-trends-dashboard/internal/middleware"
	"movie-trends-dashboard/internal/models"
	"movie-trends-dashboard/internal/service"
	"movie-trends-dashboard/internal/userstore"
)

// UserHandler serves registration, login and profile endpoints.
type UserHandler struct {
	svc      *service.UserService
	sessions *middleware.SessionManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, sessions *middleware.SessionManager) *UserHandler {
	return &UserHandler{svc: svc, sessions: sessions}
}

// Register creates a new account.
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}

	if err := h.svc.Register(req); err != nil {
		switch err {
		case service.ErrUsernameTaken:
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{Error: err.Error()})
		case service.ErrMissingFields, service.ErrPasswordMismatch, service.ErrInvalidEmail:
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to register user", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to register"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{Message: "account created"})
}

// Login checks credentials and mints a session token.
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}

	ok, err := h.svc.CheckLogin(req.Username, req.Password)
	if err != nil {
		slog.Error("failed to check login", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to log in"})
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: service.ErrInvalidCredentials.Error()})
	}

	token := h.sessions.Create(req.Username)
	return c.JSON(models.LoginResponse{Token: token, Username: req.Username})
}

// Logout invalidates the caller's session token.
func (h *UserHandler) Logout(c fiber.Ctx) error {
	if token, ok := c.Locals("session_token").(string); ok {
		h.sessions.Destroy(token)
	}
	return c.JSON(models.MessageResponse{Message: "logged out"})
}

// GetProfile returns the caller's profile.
func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)

	profile, err := h.svc.Profile(username)
	if err != nil {
		if err == userstore.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "user not found"})
		}
		slog.Error("failed to get profile", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to get profile"})
	}
	return c.JSON(profile)
}

// UpdateProfile applies the supplied profile fields.
func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	username := c.Locals(middleware.UsernameKey).(string)

	var req models.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}

	if err := h.svc.UpdateProfile(username, req); err != nil {
		if err == service.ErrInvalidEmail {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to update profile", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to update profile"})
	}
	return c.JSON(models.MessageResponse{Message: "profile updated"})
}
