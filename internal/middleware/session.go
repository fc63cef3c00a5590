package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"movie-trends-dashboard/internal/models"
)

const sessionTTL = 24 * time.Hour

// UsernameKey is the Locals key under which the authenticated username is
// stored for downstream handlers.
const UsernameKey = "username"

// SessionManager mints and resolves opaque bearer tokens. Sessions live in
// memory; when a redis client is supplied they are mirrored there so they
// survive restarts.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]string
	redis    *redis.Client
}

// NewSessionManager creates a new SessionManager.
func NewSessionManager(rdb *redis.Client) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]string),
		redis:    rdb,
	}
}

// Create mints a token for the username.
func (m *SessionManager) Create(username string) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = username
	m.mu.Unlock()

	if m.redis != nil {
		m.redis.Set(context.Background(), sessionKey(token), username, sessionTTL)
	}
	return token
}

// Resolve maps a token back to its username.
func (m *SessionManager) Resolve(token string) (string, bool) {
	m.mu.Lock()
	username, ok := m.sessions[token]
	m.mu.Unlock()
	if ok {
		return username, true
	}

	if m.redis != nil {
		username, err := m.redis.Get(context.Background(), sessionKey(token)).Result()
		if err == nil && username != "" {
			m.mu.Lock()
			m.sessions[token] = username
			m.mu.Unlock()
			return username, true
		}
	}
	return "", false
}

// Destroy invalidates a token.
func (m *SessionManager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()

	if m.redis != nil {
		m.redis.Del(context.Background(), sessionKey(token))
	}
}

// Handler returns a Fiber middleware that requires a valid bearer session
// token and stores the resolved username in Locals.
func (m *SessionManager) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error: "missing Authorization header",
			})
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error: "invalid Authorization header format, expected 'Bearer <token>'",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		username, ok := m.Resolve(token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error: "invalid or expired session token",
			})
		}

		c.Locals(UsernameKey, username)
		c.Locals("session_token", token)
		return c.Next()
	}
}

func sessionKey(token string) string {
	return "session:" + token
}
