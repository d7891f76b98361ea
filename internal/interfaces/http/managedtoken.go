package http

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// managedConfigClaims embeds the original convertRequest as a JSON blob so
// a managed_config_prefix link (spec's SUPPLEMENTED FEATURES) can be
// replayed from nothing but the token: no server-side session storage.
// convertRequest is plain strings/slices (unlike convert.Query, whose
// normalize.Rules holds compiled *regexp.Regexp), so it round-trips
// through JSON cleanly.
type managedConfigClaims struct {
	RequestJSON string `json:"request"`
	jwt.RegisteredClaims
}

// managedTokenService signs/verifies managed-config tokens, mirroring the
// teacher's JWTService shape (HMAC secret, SignedString/ParseWithClaims)
// narrowed to a single token kind with no refresh/rotation concept.
type managedTokenService struct {
	secret       []byte
	expiresHours int
}

func newManagedTokenService(secret string, expiresHours int) *managedTokenService {
	return &managedTokenService{secret: []byte(secret), expiresHours: expiresHours}
}

func (s *managedTokenService) Generate(req convertRequest) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("managed token: encode request: %w", err)
	}
	now := time.Now()
	claims := &managedConfigClaims{
		RequestJSON: string(raw),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expiresHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *managedTokenService) Verify(tokenString string) (*convertRequest, error) {
	token, err := jwt.ParseWithClaims(tokenString, &managedConfigClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("managed token: %w", err)
	}
	claims, ok := token.Claims.(*managedConfigClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("managed token: invalid")
	}
	var req convertRequest
	if err := json.Unmarshal([]byte(claims.RequestJSON), &req); err != nil {
		return nil, fmt.Errorf("managed token: decode request: %w", err)
	}
	return &req, nil
}
