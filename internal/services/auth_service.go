package services

import (
	"context"
	"errors"
	"time"

	app_errors "chat-animation/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims identify who may change animation settings.
type AccessClaims struct {
	Editor string `json:"editor"`
	jwt.RegisteredClaims
}

// AuthService verifies the bearer tokens guarding settings writes. An empty
// secret disables verification.
type AuthService struct {
	jwtSecret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{jwtSecret: []byte(secret)}
}

func (s *AuthService) Enabled() bool {
	return len(s.jwtSecret) > 0
}

// IssueToken signs an HS256 token for editor valid for ttl.
func (s *AuthService) IssueToken(editor string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := AccessClaims{
		Editor: editor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   editor,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, app_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, app_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, app_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, app_errors.ErrUnauthorized
	}

	return *claims, nil
}

type editorKey struct{}

func WithEditorContext(ctx context.Context, editor string) context.Context {
	return context.WithValue(ctx, editorKey{}, editor)
}

// EditorFromContext returns the editor attached by the auth middleware.
func EditorFromContext(ctx context.Context) (string, bool) {
	editor, ok := ctx.Value(editorKey{}).(string)
	return editor, ok && editor != ""
}
