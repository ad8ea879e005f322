package handler

import (
	"github.com/gofiber/fiber/v3"
	g "maragu.dev/gomponents"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/internal/service/content"
	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
	"github.com/Alijeyrad/interiora_backend/internal/site"
	"github.com/Alijeyrad/interiora_backend/pkg/constants"
	"github.com/Alijeyrad/interiora_backend/pkg/reqctx"
)

// SiteHandler serves the server-rendered pages.
type SiteHandler struct {
	site      config.SiteConfig
	content   content.Service
	submitter enquiry.Submitter
}

func NewSiteHandler(s config.SiteConfig, contentSvc content.Service, submitter enquiry.Submitter) *SiteHandler {
	return &SiteHandler{site: s, content: contentSvc, submitter: submitter}
}

func (h *SiteHandler) Landing(c fiber.Ctx) error {
	return h.renderLanding(c, fiber.StatusOK, site.ContactForm{})
}

// PostEnquiry handles the contact form. The page is re-rendered either way:
// with the submitted values and an error banner on failure, or with an
// empty form and the reference on success.
func (h *SiteHandler) PostEnquiry(c fiber.Ctx) error {
	ctrl := enquiry.NewController(h.submitter,
		enquiry.WithSource(constants.SourceWeb),
		enquiry.WithClient(c.IP(), c.Get(fiber.HeaderUserAgent)),
	)
	for _, f := range enquiry.Fields {
		ctrl.UpdateField(f, c.FormValue(string(f)))
	}

	receipt, err := ctrl.Submit(c.Context())
	form := site.ContactForm{Values: ctrl.Draft()}
	if err != nil {
		fail := describeEnquiryError(err, h.site.Phone)
		if fail.status == fiber.StatusInternalServerError {
			reqctx.Logger(c.Context()).Error("enquiry form: unexpected error", "err", err)
		}
		form.Error = fail.message
		form.Invalid = fail.fields
		return h.renderLanding(c, fail.status, form)
	}

	form.Reference = receipt.Reference
	return h.renderLanding(c, fiber.StatusOK, form)
}

func (h *SiteHandler) AdminLogin(c fiber.Ctx) error {
	return renderHTML(c, fiber.StatusOK, site.AdminLoginPage(h.site))
}

// renderLanding loads the gallery and testimonials and renders the page.
// A content failure only hides the affected section.
func (h *SiteHandler) renderLanding(c fiber.Ctx, status int, form site.ContactForm) error {
	ctx := c.Context()
	l := site.Landing{Site: h.site, Form: form}

	var err error
	if l.Gallery, err = h.content.ListFeaturedGallery(ctx); err != nil {
		reqctx.Logger(ctx).Warn("landing: gallery unavailable", "err", err)
	}
	if l.Testimonials, err = h.content.ListTestimonials(ctx); err != nil {
		reqctx.Logger(ctx).Warn("landing: testimonials unavailable", "err", err)
	}

	return renderHTML(c, status, site.LandingPage(l))
}

func renderHTML(c fiber.Ctx, status int, page g.Node) error {
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return site.Render(c.Response().BodyWriter(), page)
}
