package middleware

import (
	"pagecraft/auth"
	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

// AdminTokenKey is the Locals key holding the verified token
const AdminTokenKey = "adminToken"

// RequireAdminToken rejects requests without a valid token in header. The
// token stored under AdminTokenKey is a copy and outlives the request.
func RequireAdminToken(header string, verifier auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := fiberutils.CopyString(c.Get(header))
		if token == "" {
			return utils.UnauthorizedError("Missing token", auth.ErrMissingToken)
		}

		if err := verifier.Verify(token); err != nil {
			utils.Log.WithField("path", c.Path()).Warn("Rejected admin token: %v", err)
			return utils.UnauthorizedError("Invalid token", err)
		}

		c.Locals(AdminTokenKey, token)
		return c.Next()
	}
}
