package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/interiora_backend/internal/api/http/handler"
)

func (r *Router) registerSiteRoutes(app *fiber.App, h *handler.SiteHandler, limit fiber.Handler) {
	app.Get("/", h.Landing)
	app.Post("/enquiry", limit, h.PostEnquiry)
}
