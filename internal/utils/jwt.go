package utils

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"crossquote/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "crossquote-api"

var (
	jwtMu         sync.RWMutex
	jwtSecret     []byte
	jwtAccessTTL  = 15 * time.Minute
	jwtRefreshTTL = 7 * 24 * time.Hour
)

// ConfigureJWT installs the signing secret and token lifetimes. Call once at
// startup before any token is issued or parsed.
func ConfigureJWT(secret string, accessTTL, refreshTTL time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtSecret = []byte(secret)
	if accessTTL > 0 {
		jwtAccessTTL = accessTTL
	}
	if refreshTTL > 0 {
		jwtRefreshTTL = refreshTTL
	}
}

func signingKey() ([]byte, error) {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	if len(jwtSecret) == 0 {
		return nil, errors.New("jwt secret not configured")
	}
	return jwtSecret, nil
}

// GenerateTokens issues an access token and a refresh token for the given
// merchant claims. Both embed the merchant's current token version so a
// password change or logout invalidates everything issued before it.
func GenerateTokens(claims *models.MerchantClaims) (accessToken string, refreshToken string, err error) {
	secret, err := signingKey()
	if err != nil {
		return "", "", err
	}

	jwtMu.RLock()
	accessTTL, refreshTTL := jwtAccessTTL, jwtRefreshTTL
	jwtMu.RUnlock()

	now := time.Now()

	accessClaims := models.MerchantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.MerchantID), 10),
		},
		MerchantID:   claims.MerchantID,
		Email:        claims.Email,
		Role:         claims.Role,
		Permissions:  claims.Permissions,
		TokenVersion: claims.TokenVersion,
	}
	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	// Refresh tokens carry no permissions; they can only be exchanged, never
	// used to call the API directly.
	refreshClaims := models.MerchantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.MerchantID), 10),
		},
		MerchantID:   claims.MerchantID,
		Email:        claims.Email,
		Role:         claims.Role,
		TokenVersion: claims.TokenVersion,
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseToken parses and validates a signed token string and returns the
// embedded merchant claims.
func ParseToken(tokenStr string) (*jwt.Token, *models.MerchantClaims, error) {
	secret, err := signingKey()
	if err != nil {
		return nil, nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.MerchantClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.MerchantClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}

	return token, claims, nil
}
