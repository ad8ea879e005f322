package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/interiora_backend/internal/service/admin"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	"github.com/Alijeyrad/interiora_backend/pkg/reqctx"
)

type AdminHandler struct {
	svc admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tokens, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAdminError(c, err)
	}
	return ok(c, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AdminHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if err := c.Bind().JSON(&req); err != nil || req.RefreshToken == "" {
		return badRequest(c, "refresh_token is required")
	}

	tokens, err := h.svc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return mapAdminError(c, err)
	}
	return ok(c, tokens)
}

func (h *AdminHandler) Logout(c fiber.Ctx) error {
	claims := reqctx.ClaimsFromContext(c.Context())
	if claims == nil || claims.GetSessionID() == nil {
		return unauthorized(c, "unauthorized")
	}

	if err := h.svc.Logout(c.Context(), *claims.GetSessionID()); err != nil {
		return mapAdminError(c, err)
	}
	return noContent(c)
}

type listLeadsQuery struct {
	Status  string `query:"status"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}

func (h *AdminHandler) ListLeads(c fiber.Ctx) error {
	var q listLeadsQuery
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	page, err := h.svc.ListLeads(c.Context(), admin.LeadQuery{
		Status:  q.Status,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		return mapAdminError(c, err)
	}
	return ok(c, page)
}

type updateLeadRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateLead(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid lead id")
	}

	var req updateLeadRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	l, err := h.svc.UpdateLeadStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapAdminError(c, err)
	}
	return ok(c, l)
}

func mapAdminError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, admin.ErrInvalidCredentials),
		errors.Is(err, admin.ErrInvalidToken),
		errors.Is(err, admin.ErrSessionNotFound),
		errors.Is(err, admin.ErrUnauthenticated):
		return unauthorized(c, err.Error())
	case errors.Is(err, admin.ErrAccountLocked):
		return tooManyRequests(c, err.Error())
	case errors.Is(err, authorize.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, lead.ErrInvalidStatus):
		return badRequest(c, err.Error())
	case errors.Is(err, lead.ErrLeadNotFound):
		return notFound(c, err.Error())
	default:
		reqctx.Logger(c.Context()).Error("admin: unexpected error", "err", err)
		return internalError(c)
	}
}
