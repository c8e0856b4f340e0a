package api

import (
	"errors"
	"strings"

	"pagecraft/auth"
	"pagecraft/site"
	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
)

// SiteHandler serves login and the site document
type SiteHandler struct {
	site *site.Service
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(svc *site.Service) *SiteHandler {
	return &SiteHandler{site: svc}
}

// Credentials is the login request body
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/login
func (h *SiteHandler) Login(c *fiber.Ctx) error {
	var creds Credentials
	if err := c.BodyParser(&creds); err != nil {
		return utils.BadRequestError("Missing credentials", err)
	}
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return utils.BadRequestError("Missing credentials", nil)
	}

	token, err := h.site.Login(creds.Username, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return utils.UnauthorizedError("Invalid username or password", err)
	}
	if err != nil {
		return utils.InternalServerError("Failed to issue token", err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// GetSite handles GET /api/site. It never fails: unreadable storage yields the
// empty document.
func (h *SiteHandler) GetSite(c *fiber.Ctx) error {
	return c.JSON(h.site.Get())
}

// SaveSite handles POST /api/site
func (h *SiteHandler) SaveSite(c *fiber.Ctx) error {
	if err := h.site.SaveRaw(c.Body()); err != nil {
		if errors.Is(err, site.ErrInvalidDocument) {
			return utils.BadRequestError("Invalid site data", err)
		}
		return utils.InternalServerError("Failed to save site", err)
	}

	return c.JSON(fiber.Map{"success": true})
}
