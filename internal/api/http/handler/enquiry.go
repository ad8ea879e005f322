package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/constants"
	"github.com/Alijeyrad/interiora_backend/pkg/reqctx"
)

type EnquiryHandler struct {
	submitter   enquiry.Submitter
	studioPhone string
}

func NewEnquiryHandler(submitter enquiry.Submitter, studioPhone string) *EnquiryHandler {
	return &EnquiryHandler{submitter: submitter, studioPhone: studioPhone}
}

// Create accepts a JSON enquiry. Each request drives its own controller.
func (h *EnquiryHandler) Create(c fiber.Ctx) error {
	var req enquiry.Enquiry
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctrl := enquiry.NewController(h.submitter,
		enquiry.WithSource(constants.SourceAPI),
		enquiry.WithClient(c.IP(), c.Get(fiber.HeaderUserAgent)),
		enquiry.WithDraft(req),
	)

	receipt, err := ctrl.Submit(c.Context())
	if err != nil {
		return h.mapEnquiryError(c, err)
	}
	return created(c, receipt)
}

func (h *EnquiryHandler) mapEnquiryError(c fiber.Ctx, err error) error {
	f := describeEnquiryError(err, h.studioPhone)
	switch f.status {
	case fiber.StatusUnprocessableEntity:
		return unprocessable(c, f.message, f.code, f.fields)
	case fiber.StatusServiceUnavailable:
		return serviceUnavailable(c, f.message, f.code)
	case fiber.StatusConflict:
		return conflict(c, f.message)
	default:
		reqctx.Logger(c.Context()).Error("enquiry: unexpected error", "err", err)
		return internalError(c)
	}
}

type enquiryFailure struct {
	status  int
	code    string
	message string
	fields  []enquiry.Field
}

// describeEnquiryError maps a Submit error to what the visitor is told.
// The JSON API and the HTML form share it.
func describeEnquiryError(err error, studioPhone string) enquiryFailure {
	var verr *enquiry.ValidationError
	switch {
	case errors.As(err, &verr):
		return enquiryFailure{
			status:  fiber.StatusUnprocessableEntity,
			code:    verr.Code(),
			message: verr.Kind.Error(),
			fields:  verr.Fields,
		}
	case errors.Is(err, lead.ErrPersistence):
		return enquiryFailure{
			status:  fiber.StatusServiceUnavailable,
			code:    "persistence_failure",
			message: persistenceMessage(studioPhone),
		}
	case errors.Is(err, enquiry.ErrSubmitInProgress):
		return enquiryFailure{status: fiber.StatusConflict, code: "in_progress", message: err.Error()}
	default:
		return enquiryFailure{status: fiber.StatusInternalServerError, code: "internal", message: "something went wrong"}
	}
}

func persistenceMessage(phone string) string {
	if phone == "" {
		return "We could not save your enquiry. Please try again in a few minutes."
	}
	return fmt.Sprintf("We could not save your enquiry. Please try again or call us on %s.", phone)
}
