package handlers

import (
	stderrors "errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crossquote/internal/errors"
	"crossquote/internal/models"
	"crossquote/internal/repositories"
	"crossquote/internal/services/pricing"
	"crossquote/internal/services/quote"
	"crossquote/internal/services/schedule"
	"crossquote/internal/utils"
	"crossquote/internal/validation"
)

type QuoteHandler struct {
	quoteService quote.Service
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService quote.Service, logger *zap.Logger) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// CreateQuote prices the request and persists a draft quote.
func (h *QuoteHandler) CreateQuote(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.QuoteInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.QuoteInput(&input)
	if !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}

	resp, err := h.quoteService.CreateQuote(c.Context(), claims.MerchantID, &input)
	if err != nil {
		return h.mapQuoteError(c, err)
	}

	return utils.Created(c, resp)
}

// PreviewQuote prices the request without persisting anything.
func (h *QuoteHandler) PreviewQuote(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.PreviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.PreviewInput(&input)
	if !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}

	resp, err := h.quoteService.PreviewQuote(c.Context(), claims.MerchantID, &input)
	if err != nil {
		return h.mapQuoteError(c, err)
	}

	return utils.Success(c, resp)
}

// GetQuote returns one of the merchant's quotes.
func (h *QuoteHandler) GetQuote(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	resp, err := h.quoteService.GetQuote(claims.MerchantID, c.Params("id"))
	if err != nil {
		return h.mapQuoteError(c, err)
	}

	return utils.Success(c, resp)
}

// ListQuotes returns the merchant's quotes, newest first.
func (h *QuoteHandler) ListQuotes(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	pagination := utils.GetPagination(c, 1, 10)
	filter := repositories.QuoteFilter{
		Status:  c.Query("status"),
		Country: strings.ToUpper(c.Query("country")),
	}

	summaries, total, err := h.quoteService.ListQuotes(claims.MerchantID, filter, pagination.Offset, pagination.Limit)
	if err != nil {
		return h.mapQuoteError(c, err)
	}

	pagination.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(summaries, pagination))
}

// ConfirmQuote promotes a draft and advances the period order counter.
func (h *QuoteHandler) ConfirmQuote(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	resp, err := h.quoteService.ConfirmQuote(c.Context(), claims.MerchantID, c.Params("id"))
	if err != nil {
		return h.mapQuoteError(c, err)
	}

	return utils.Success(c, resp)
}

// DeleteQuote removes a draft.
func (h *QuoteHandler) DeleteQuote(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.quoteService.DeleteQuote(c.Context(), claims.MerchantID, c.Params("id")); err != nil {
		return h.mapQuoteError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "quote deleted",
	})
}

func (h *QuoteHandler) mapQuoteError(c *fiber.Ctx, err error) error {
	switch {
	case stderrors.Is(err, schedule.ErrUnknownCountry),
		stderrors.Is(err, schedule.ErrInvalidCategory):
		return utils.BadRequest(c, err.Error())
	case stderrors.Is(err, pricing.ErrDegenerateSchedule):
		return utils.Respond(c, fiber.StatusUnprocessableEntity, fiber.Map{"error": err.Error()})
	case stderrors.Is(err, errors.ErrQuoteNotFound):
		return utils.DomainErrorResponse(c, fiber.StatusNotFound, err)
	case stderrors.Is(err, errors.ErrQuoteForbidden):
		return utils.DomainErrorResponse(c, fiber.StatusForbidden, err)
	case stderrors.Is(err, errors.ErrQuoteNotDraft):
		return utils.DomainErrorResponse(c, fiber.StatusConflict, err)
	case stderrors.Is(err, errors.ErrMerchantNotFound):
		return utils.DomainErrorResponse(c, fiber.StatusUnauthorized, err)
	default:
		h.logger.Error("quote operation", zap.Error(err))
		return utils.InternalError(c, "quote operation failed")
	}
}
