package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/interiora_backend/pkg/paseto"
)

// RequirePermission checks the authenticated admin's role against the policy.
// It must run after AuthRequired.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if err := auth.MustEnforce(c.Context(), authorize.Role(claims.Role), resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}
