package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/interiora_backend/internal/api/http/handler"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
)

func (r *Router) registerAdminRoutes(
	api fiber.Router,
	h *handler.AdminHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
	limit fiber.Handler,
) {
	g := api.Group("/admin")

	g.Post("/login", limit, h.Login)
	g.Post("/refresh", h.Refresh)
	g.Post("/logout", authRequired, h.Logout)

	g.Get("/leads", authRequired, requirePerm(authorize.ResourceLead, authorize.ActionRead), h.ListLeads)
	g.Patch("/leads/:id", authRequired, requirePerm(authorize.ResourceLead, authorize.ActionUpdate), h.UpdateLead)
}
