package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vairleon/ai-web-core/domain"
)

// JWTService implements domain.TokenService with HMAC-signed tokens. The
// token is stateless: once issued it is opaque to the server and cannot be
// revoked before expiry.
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
}

// NewJWTService creates a new JWT token service.
func NewJWTService(secretKey string, ttl time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

// Generate implements domain.TokenService
func (j *JWTService) Generate(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": user.UserName,
		"email":    user.Email,
		"id":       user.ID,
		"iat":      now.Unix(),
		"exp":      now.Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService. Expired, forged and malformed
// tokens all fail with ErrUnauthorized; the caller cannot tell them apart.
func (j *JWTService) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrUnauthorized
	}

	return &domain.TokenClaims{
		UserID:    uint(id),
		UserName:  username,
		Email:     email,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
