package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLifetime is used when Config.Lifetime is zero.
const DefaultLifetime = 7 * 24 * time.Hour

// Config holds the signing settings for issued tokens.
type Config struct {
	Secret   string
	Lifetime time.Duration
}

// UserClaim is the user object embedded in a token. ID and Blog are absent
// from tokens that only carry a username.
type UserClaim struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Blog     string `json:"blog,omitempty"`
}

// Claims represents JWT claims.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Username returns the user claim's username, falling back to the subject.
func (c *Claims) Username() string {
	if c.User.Username != "" {
		return c.User.Username
	}
	return c.Subject
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTService creates a new JWT service from cfg.
func NewJWTService(cfg Config) *JWTService {
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &JWTService{
		secret:   []byte(cfg.Secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// SigningKey returns the HMAC key used for HS256 signatures.
func (s *JWTService) SigningKey() []byte {
	return s.secret
}

// Issue signs a token for user with subject set to the username.
func (s *JWTService) Issue(user UserClaim) (string, error) {
	now := s.now()
	return s.sign(user, now, now.Add(s.lifetime))
}

// Refresh signs a new token for the same user claim and subject. The new
// expiry is never earlier than one second past the old one, so it strictly
// increases even at the token's one-second precision.
func (s *JWTService) Refresh(old *Claims) (string, error) {
	if old == nil {
		return "", errors.New("refresh: no claims")
	}
	user := old.User
	if user.Username == "" {
		user.Username = old.Subject
	}

	now := s.now()
	exp := now.Add(s.lifetime).Truncate(time.Second)
	if old.ExpiresAt != nil && !exp.After(old.ExpiresAt.Time) {
		exp = old.ExpiresAt.Time.Add(time.Second)
	}
	return s.sign(user, now, exp)
}

func (s *JWTService) sign(user UserClaim, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies tokenString and returns the parsed token carrying *Claims.
// Tokens must be HS256, carry an expiry and name a user.
func (s *JWTService) ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Username() == "" {
		return nil, errors.New("token carries no username")
	}
	return token, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	return token.Claims.(*Claims), nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}
