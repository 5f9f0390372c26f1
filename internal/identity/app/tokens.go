package app

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenConfig struct {
	Issuer string
	Secret string
	TTL    time.Duration
}

type TokenManager struct {
	cfg TokenConfig
	now func() time.Time
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &TokenManager{cfg: cfg, now: time.Now}
}

// Sign issues an HS256 token whose subject is the user id and whose jti names the
// session record.
func (m *TokenManager) Sign(userID, email, name string) (token, jti string, exp time.Time, err error) {
	now := m.now()
	exp = now.Add(m.cfg.TTL)
	jti = uuid.NewString()

	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString([]byte(m.cfg.Secret))
	return token, jti, exp, err
}

func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, jwt.WithIssuer(m.cfg.Issuer), jwt.WithTimeFunc(m.now))
}

// ParseExpired verifies the signature and issuer but ignores expiry. Sign-out
// uses it so a stale token still reaches its session and cart.
func (m *TokenManager) ParseExpired(tokenStr string) (*Claims, error) {
	claims, err := m.parse(tokenStr, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	if claims.Issuer != m.cfg.Issuer {
		return nil, errors.New("unexpected issuer")
	}
	return claims, nil
}

func (m *TokenManager) parse(tokenStr string, opts ...jwt.ParserOption) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
