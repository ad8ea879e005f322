package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/interiora_backend/internal/service/content"
	"github.com/Alijeyrad/interiora_backend/pkg/reqctx"
)

type ContentHandler struct {
	svc content.Service
}

func NewContentHandler(svc content.Service) *ContentHandler {
	return &ContentHandler{svc: svc}
}

func (h *ContentHandler) Gallery(c fiber.Ctx) error {
	items, err := h.svc.ListFeaturedGallery(c.Context())
	if err != nil {
		reqctx.Logger(c.Context()).Error("content: list gallery", "err", err)
		return internalError(c)
	}
	if items == nil {
		items = []content.GalleryItem{}
	}
	return ok(c, items)
}

func (h *ContentHandler) Testimonials(c fiber.Ctx) error {
	items, err := h.svc.ListTestimonials(c.Context())
	if err != nil {
		reqctx.Logger(c.Context()).Error("content: list testimonials", "err", err)
		return internalError(c)
	}
	if items == nil {
		items = []content.Testimonial{}
	}
	return ok(c, items)
}
