package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

// InternalAuthMiddleware guards the batch endpoints with the shared secret
// handed to the external scheduler. It is unrelated to end-user JWTs.
type InternalAuthMiddleware struct {
	token string
}

func NewInternalAuthMiddleware(token string) *InternalAuthMiddleware {
	return &InternalAuthMiddleware{token: token}
}

func (m *InternalAuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		tok, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok || m.token == "" {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if subtle.ConstantTimeCompare([]byte(tok), []byte(m.token)) != 1 {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		return c.Next()
	}
}
