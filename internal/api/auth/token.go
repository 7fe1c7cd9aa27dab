package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/otus-hla/social-network/config"
	"github.com/otus-hla/social-network/internal/types"
)

// TokenTypeAccess discriminates access tokens from future token kinds.
const TokenTypeAccess = "access"

const defaultAccessTokenTTL = 24 * time.Hour

// TokenService signs and verifies time-bounded access tokens. The
// signing secret comes from configuration at start-up; there is no
// revocation mechanism, expiry is the only exit state.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	now       func() time.Time
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}
	return &TokenService{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		issuer:    cfg.Issuer,
		now:       time.Now,
	}
}

// CreateAccessToken builds a signed token for the given subject. Extra
// claims are merged in, but the reserved sub/iat/exp/type claims win
// on collision.
func (s *TokenService) CreateAccessToken(subject string, extraClaims map[string]any) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{}
	for k, v := range extraClaims {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(s.ttl))
	claims["type"] = TokenTypeAccess
	if s.issuer != "" {
		claims["iss"] = s.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature, expiry and token type. Every
// failure mode maps to types.ErrUnauthenticated; a bad token is never
// a process-level fault.
func (s *TokenService) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token verification failed: %w", types.ErrUnauthenticated)
	}
	if typ, _ := claims["type"].(string); typ != TokenTypeAccess {
		return nil, fmt.Errorf("unexpected token type: %w", types.ErrUnauthenticated)
	}
	return claims, nil
}

// GetUserID verifies a token and extracts the authenticated subject.
func (s *TokenService) GetUserID(tokenString string) (string, error) {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject: %w", types.ErrUnauthenticated)
	}
	return sub, nil
}
