package handlers

import (
	stderrors "errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crossquote/internal/models"
	"crossquote/internal/repositories"
	"crossquote/internal/utils"
)

type AdminHandler struct {
	merchantRepo repositories.MerchantRepository
	logger       *zap.Logger
}

func NewAdminHandler(merchantRepo repositories.MerchantRepository, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{
		merchantRepo: merchantRepo,
		logger:       logger,
	}
}

// ListMerchants returns registered merchants, paginated.
func (h *AdminHandler) ListMerchants(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c, 1, 20)

	merchants, total, err := h.merchantRepo.List(pagination.Offset, pagination.Limit)
	if err != nil {
		h.logger.Error("list merchants", zap.Error(err))
		return utils.InternalError(c, "failed to list merchants")
	}

	sanitized := make([]fiber.Map, 0, len(merchants))
	for _, m := range merchants {
		sanitized = append(sanitized, merchantJSON(m))
	}

	pagination.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(sanitized, pagination))
}

// SuspendMerchant blocks an account and kills its sessions.
func (h *AdminHandler) SuspendMerchant(c *fiber.Ctx) error {
	merchant, err := h.merchantByParam(c)
	if err != nil {
		return err
	}

	merchant.Status = models.MerchantStatusSuspended
	if err := h.merchantRepo.Update(merchant); err != nil {
		h.logger.Error("suspend merchant", zap.Uint("merchant_id", merchant.ID), zap.Error(err))
		return utils.InternalError(c, "failed to suspend merchant")
	}
	if err := h.merchantRepo.IncrementTokenVersion(merchant.ID); err != nil {
		h.logger.Warn("rotate token version", zap.Uint("merchant_id", merchant.ID), zap.Error(err))
	}

	return utils.Success(c, fiber.Map{
		"merchant": merchantJSON(merchant),
	})
}

// ReinstateMerchant reactivates a suspended account.
func (h *AdminHandler) ReinstateMerchant(c *fiber.Ctx) error {
	merchant, err := h.merchantByParam(c)
	if err != nil {
		return err
	}

	merchant.Status = models.MerchantStatusActive
	if err := h.merchantRepo.Update(merchant); err != nil {
		h.logger.Error("reinstate merchant", zap.Uint("merchant_id", merchant.ID), zap.Error(err))
		return utils.InternalError(c, "failed to reinstate merchant")
	}

	return utils.Success(c, fiber.Map{
		"merchant": merchantJSON(merchant),
	})
}

func (h *AdminHandler) merchantByParam(c *fiber.Ctx) (*models.Merchant, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, utils.BadRequest(c, "invalid merchant id")
	}

	merchant, err := h.merchantRepo.GetByID(uint(id))
	if err != nil {
		if stderrors.Is(err, repositories.ErrMerchantNotFound) {
			return nil, utils.NotFound(c, "merchant not found")
		}
		h.logger.Error("load merchant", zap.Uint64("merchant_id", id), zap.Error(err))
		return nil, utils.InternalError(c, "failed to load merchant")
	}
	return merchant, nil
}
