package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken = errors.New("access token is invalid")
	ErrExpiredToken = errors.New("access token is expired")
)

const defaultTokenTTL = 24 * time.Hour

type TokenManager interface {
	GenerateAccessToken(userUid string) (string, error)
	ValidateAccessToken(tokenString string) (string, error)
}

type AccessTokenClaims struct {
	UserUid string `json:"user_uid"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
	clock  utils.Clock
}

func NewJWTManager(secret string, ttl time.Duration, clock utils.Clock) *JWTManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, clock: clock}
}

func (j *JWTManager) GenerateAccessToken(userUid string) (string, error) {
	now := j.clock.Now()
	claims := &AccessTokenClaims{
		UserUid: userUid,
		StandardClaims: jwt.StandardClaims{
			Subject:   userUid,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(j.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken checks signature and expiry and returns the user uid the token was issued for.
func (j *JWTManager) ValidateAccessToken(tokenString string) (string, error) {
	claims := &AccessTokenClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	// expiry is checked against the injected clock
	if !claims.VerifyExpiresAt(j.clock.Now().Unix(), true) {
		return "", ErrExpiredToken
	}
	if claims.UserUid == "" {
		return "", ErrInvalidToken
	}

	return claims.UserUid, nil
}
