package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// JWTServiceImpl implements domain.TokenService. Issuance is single-shot:
// the token lifetime is fixed at sign time by the stay-signed-in preference
// and the payload carries only the account identifier.
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	normalTTL       time.Duration
	staySignedInTTL time.Duration
}

// NewJWTService creates a new JWT service.
func NewJWTService(secretKey, issuer string, normalTTL, staySignedInTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		normalTTL:       normalTTL,
		staySignedInTTL: staySignedInTTL,
	}
}

// generateJTI creates a unique JWT ID so two tokens issued within the same
// second still differ.
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Issue implements domain.TokenService.
func (j *JWTServiceImpl) Issue(userID string, staySignedIn bool) (string, error) {
	ttl := j.normalTTL
	if staySignedIn {
		ttl = j.staySignedInTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     j.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
		"jti":     j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, domain.ErrTokenMalformed
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.TokenClaims{
		UserID:    userID,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
