package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cadastra/cadastra/internal/model"
)

// Token errors. All map to an unauthenticated outcome at the HTTP layer.
var (
	ErrTokenExpired  = errors.New("token has expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrMissingHeader = errors.New("missing authorization header")
	ErrWrongScheme   = errors.New("authorization scheme must be Bearer")
)

// Claims is the identity payload carried by access tokens. The JSON keys
// are part of the wire contract; "papel" is the role claim.
type Claims struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"papel"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 signed tokens. The signing secret
// is fixed at construction; nothing here reads ambient global state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given signing secret and
// token lifetime.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given account view.
func (s *TokenService) Issue(account *model.AccountView) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    account.ID,
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify validates the signature and expiry of a token and reconstructs
// its claims. Every failure mode is an error, never a panic.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParseBearer extracts the credential from an Authorization header of the
// form "Bearer <token>". Any other shape is rejected before verification
// is attempted.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", ErrWrongScheme
	}
	return token, nil
}
