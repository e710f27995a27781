// Package auth issues and refreshes merchant tokens and manages credentials.
package auth

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"crossquote/internal/errors"
	"crossquote/internal/models"
	"crossquote/internal/repositories"
	"crossquote/internal/utils"
)

type Service interface {
	Register(input *models.RegisterMerchantInput) (*models.Merchant, error)
	Login(email, password string) (*models.Merchant, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(merchantID uint) error
	ChangePassword(merchantID uint, oldPassword, newPassword string) error

	// VerifySession checks that the merchant behind a token still exists,
	// is not suspended, and has not rotated their token version.
	VerifySession(merchantID uint, tokenVersion int) error
}

type service struct {
	merchantRepo repositories.MerchantRepository
	logger       *zap.Logger
}

func NewService(merchantRepo repositories.MerchantRepository, logger *zap.Logger) Service {
	return &service{
		merchantRepo: merchantRepo,
		logger:       logger,
	}
}

func (s *service) Register(input *models.RegisterMerchantInput) (*models.Merchant, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tier := input.SellerTier
	if tier == "" {
		tier = string(models.TierStandard)
	}

	merchant := &models.Merchant{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Password:     string(hashed),
		BusinessName: input.BusinessName,
		Country:      strings.ToUpper(input.Country),
		SellerTier:   tier,
		Role:         models.RoleMerchant,
		Status:       models.MerchantStatusActive,
		SignupDate:   time.Now().UTC(),
		TokenVersion: 1,
	}

	if err := s.merchantRepo.Create(merchant); err != nil {
		if stderrors.Is(err, repositories.ErrEmailTaken) {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create merchant: %w", err)
	}

	s.logger.Info("merchant registered",
		zap.Uint("merchant_id", merchant.ID),
		zap.String("country", merchant.Country),
		zap.String("seller_tier", merchant.SellerTier),
	)
	return merchant, nil
}

func (s *service) Login(email, password string) (*models.Merchant, string, string, error) {
	merchant, err := s.merchantRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Same response for unknown email and bad password.
		s.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		return nil, "", "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(merchant.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed", zap.Uint("merchant_id", merchant.ID))
		return nil, "", "", errors.ErrInvalidCredentials
	}

	if merchant.Status == models.MerchantStatusSuspended {
		return nil, "", "", errors.ErrAccountSuspended
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.MerchantClaims{
		MerchantID:   merchant.ID,
		Email:        merchant.Email,
		Role:         merchant.Role,
		TokenVersion: merchant.TokenVersion,
		Permissions:  models.GetDefaultPermissions(merchant.Role),
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("generate tokens: %w", err)
	}

	now := time.Now().UTC()
	merchant.LastLoginAt = &now
	if err := s.merchantRepo.Update(merchant); err != nil {
		s.logger.Warn("record last login", zap.Uint("merchant_id", merchant.ID), zap.Error(err))
	}

	return merchant, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.ErrInvalidCredentials
	}

	merchant, err := s.merchantRepo.GetByID(claims.MerchantID)
	if err != nil {
		return "", "", errors.ErrMerchantNotFound
	}

	if merchant.TokenVersion != claims.TokenVersion {
		return "", "", errors.ErrInvalidCredentials
	}
	if merchant.Status == models.MerchantStatusSuspended {
		return "", "", errors.ErrAccountSuspended
	}

	return utils.GenerateTokens(&models.MerchantClaims{
		MerchantID:   merchant.ID,
		Email:        merchant.Email,
		Role:         merchant.Role,
		TokenVersion: merchant.TokenVersion,
		Permissions:  models.GetDefaultPermissions(merchant.Role),
	})
}

func (s *service) Logout(merchantID uint) error {
	return s.merchantRepo.IncrementTokenVersion(merchantID)
}

func (s *service) VerifySession(merchantID uint, tokenVersion int) error {
	merchant, err := s.merchantRepo.GetByID(merchantID)
	if err != nil {
		return errors.ErrMerchantNotFound
	}
	if merchant.TokenVersion != tokenVersion {
		return errors.ErrInvalidCredentials
	}
	if merchant.Status == models.MerchantStatusSuspended {
		return errors.ErrAccountSuspended
	}
	return nil
}

func (s *service) ChangePassword(merchantID uint, oldPassword, newPassword string) error {
	merchant, err := s.merchantRepo.GetByID(merchantID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrMerchantNotFound) {
			return errors.ErrMerchantNotFound
		}
		return fmt.Errorf("load merchant: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(merchant.Password), []byte(oldPassword)); err != nil {
		return errors.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.merchantRepo.UpdatePassword(merchantID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Outstanding tokens still carry the old version; cut them off.
	if err := s.merchantRepo.IncrementTokenVersion(merchantID); err != nil {
		return fmt.Errorf("rotate token version: %w", err)
	}

	s.logger.Info("password changed", zap.Uint("merchant_id", merchantID))
	return nil
}
