package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
)

type ctxKey string

const (
	sessionCookieName = "session"
	userCtxKey        = ctxKey("currentUser")
)

// Sessions signs and verifies the session cookie. The secret comes from
// configuration rather than being read from the environment at call sites.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: 14 * 24 * time.Hour}
}

func (s *Sessions) sign(uidStr string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(uidStr))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Create sets a signed cookie with the user id.
func (s *Sessions) Create(w http.ResponseWriter, userID uint) {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uidStr + "." + s.sign(uidStr),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.ttl),
	})
}

// Clear deletes the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Parse validates the cookie signature and returns the user id.
func (s *Sessions) Parse(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return 0, false
	}
	uidStr, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(s.sign(uidStr))) {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

// WithUser stores the resolved current user in the request context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// UserFrom extracts the current user, nil when unauthenticated.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userCtxKey).(*models.User)
	return u
}
