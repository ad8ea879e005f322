package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	pasetotoken "github.com/Alijeyrad/interiora_backend/pkg/paseto"
	"github.com/Alijeyrad/interiora_backend/pkg/reqctx"
)

// SessionChecker reports the user owning a live session.
// *redis.SessionStore satisfies it.
type SessionChecker interface {
	Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)
}

// AuthRequired validates a Bearer PASETO access token and checks its session.
// On success the claims are stored in c.Locals(pasetotoken.CtxKeyClaims) and
// in the request context for the services.
func AuthRequired(mgr *pasetotoken.Manager, sessions SessionChecker) fiber.Handler {
	return func(c fiber.Ctx) error {
		tok, ok := pasetotoken.BearerToken(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		claims, err := mgr.Verify(tok)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		// Only access tokens are accepted on protected routes
		if claims.Type != pasetotoken.TokenTypeAccess || claims.SessionID == nil {
			return fiber.ErrUnauthorized
		}

		owner, err := sessions.Get(c.Context(), *claims.SessionID)
		if err != nil || owner != claims.UserID {
			return fiber.ErrUnauthorized
		}

		c.Locals(pasetotoken.CtxKeyClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}
