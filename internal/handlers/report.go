package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crossquote/internal/models"
	"crossquote/internal/services/report"
	"crossquote/internal/utils"
)

type ReportHandler struct {
	reportService report.Service
	logger        *zap.Logger
}

func NewReportHandler(reportService report.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// ExportQuotes writes the merchant's quote history to a workbook and serves
// it as a download.
func (h *ReportHandler) ExportQuotes(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	path, err := h.reportService.ExportQuotes(claims.MerchantID)
	if err != nil {
		h.logger.Error("export quotes", zap.Uint("merchant_id", claims.MerchantID), zap.Error(err))
		return utils.InternalError(c, "export failed")
	}

	return c.Download(path, filepath.Base(path))
}
