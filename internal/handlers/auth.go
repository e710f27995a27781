package handlers

import (
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crossquote/internal/config"
	"crossquote/internal/errors"
	"crossquote/internal/models"
	"crossquote/internal/services/auth"
	"crossquote/internal/utils"
	"crossquote/internal/validation"
)

type AuthHandler struct {
	authService auth.Service
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthHandler(authService auth.Service, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		logger:      logger,
	}
}

// Register creates a merchant account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input models.RegisterMerchantInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.MerchantRegistration(&input)
	if !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}

	merchant, err := h.authService.Register(&input)
	if err != nil {
		if stderrors.Is(err, errors.ErrEmailTaken) {
			return utils.DomainErrorResponse(c, fiber.StatusConflict, err)
		}
		h.logger.Error("register merchant", zap.Error(err))
		return utils.InternalError(c, "registration failed")
	}

	return utils.Created(c, fiber.Map{
		"merchant": merchantJSON(merchant),
	})
}

// Login authenticates a merchant and returns JWT tokens.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "email and password are required")
	}

	merchant, accessToken, refreshToken, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrInvalidCredentials):
			return utils.DomainErrorResponse(c, fiber.StatusUnauthorized, err)
		case stderrors.Is(err, errors.ErrAccountSuspended):
			return utils.DomainErrorResponse(c, fiber.StatusForbidden, err)
		default:
			h.logger.Error("login", zap.Error(err))
			return utils.InternalError(c, "authentication failed")
		}
	}

	h.setAuthCookies(c, accessToken, refreshToken)

	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"merchant":      merchantJSON(merchant),
	})
}

// RefreshToken exchanges a refresh token for a new pair.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")

	if refreshToken == "" {
		var input models.RefreshInput
		if err := c.BodyParser(&input); err != nil {
			return utils.Unauthorized(c, "refresh token not provided")
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		return utils.Unauthorized(c, "refresh token not provided")
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshTokens(refreshToken)
	if err != nil {
		h.logger.Debug("token refresh failed", zap.Error(err))
		return utils.Unauthorized(c, "invalid refresh token")
	}

	h.setAuthCookies(c, newAccessToken, newRefreshToken)

	return utils.Success(c, fiber.Map{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}

// Logout invalidates all outstanding tokens for the merchant.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.authService.Logout(claims.MerchantID); err != nil {
		h.logger.Error("logout", zap.Uint("merchant_id", claims.MerchantID), zap.Error(err))
		return utils.InternalError(c, "failed to logout")
	}

	h.clearAuthCookies(c)

	return utils.Success(c, fiber.Map{
		"message": "successfully logged out",
	})
}

// ChangePassword rotates the merchant's password and token version.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input models.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims, ok := c.Locals("claims").(*models.MerchantClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	v := validation.New()
	v.PasswordChange(&input)
	if !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}

	if err := h.authService.ChangePassword(claims.MerchantID, input.OldPassword, input.NewPassword); err != nil {
		if stderrors.Is(err, errors.ErrInvalidCredentials) {
			return utils.DomainErrorResponse(c, fiber.StatusBadRequest, err)
		}
		h.logger.Error("change password", zap.Uint("merchant_id", claims.MerchantID), zap.Error(err))
		return utils.InternalError(c, "password change failed")
	}

	h.clearAuthCookies(c)

	return utils.Success(c, fiber.Map{
		"message": "password changed, log in again",
	})
}

// Helper methods

func merchantJSON(m *models.Merchant) fiber.Map {
	return fiber.Map{
		"id":            m.ID,
		"email":         m.Email,
		"business_name": m.BusinessName,
		"country":       m.Country,
		"seller_tier":   m.SellerTier,
		"role":          m.Role,
		"status":        m.Status,
		"signup_date":   m.SignupDate,
		"permissions":   models.GetDefaultPermissions(m.Role),
	}
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(h.cfg.AccessTokenTTL.Seconds()),
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(h.cfg.RefreshTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   h.cfg.IsProduction(),
			Path:     "/",
		})
	}
}
