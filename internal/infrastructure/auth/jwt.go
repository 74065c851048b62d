package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
)

// JWTService validates HS256 access tokens carrying the uploader's ID. Tokens
// are normally minted by the identity provider sharing the secret; the
// generator exists for the token command and tests.
type JWTService struct {
	secretKey      []byte
	issuer         string
	accessTokenTTL time.Duration
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey, issuer string, accessTokenTTL time.Duration) *JWTService {
	return &JWTService{
		secretKey:      []byte(secretKey),
		issuer:         issuer,
		accessTokenTTL: accessTokenTTL,
	}
}

func (s *JWTService) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.accessTokenTTL)

	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenStr, expiresAt, nil
}

func (s *JWTService) ValidateAccessToken(tokenStr string) (uuid.UUID, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}

	return userID, nil
}
