package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/interiora_backend/internal/api/http/handler"
)

func (r *Router) registerPublicRoutes(api fiber.Router, enquiryH *handler.EnquiryHandler, contentH *handler.ContentHandler, limit fiber.Handler) {
	api.Post("/enquiries", limit, enquiryH.Create)
	api.Get("/gallery", contentH.Gallery)
	api.Get("/testimonials", contentH.Testimonials)
}
