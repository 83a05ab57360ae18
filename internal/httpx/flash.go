package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const flashCookieName = "flash"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Level   string // success, warning, danger
	Message string
}

// SetFlash stores a flash message in a short-lived cookie, read once by the
// next page render.
func SetFlash(w http.ResponseWriter, level, message string) {
	value := url.QueryEscape(level) + "|" + url.QueryEscape(message)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// PopFlash reads and clears the flash cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true})
	level, message := "success", c.Value
	if i := strings.IndexByte(c.Value, '|'); i >= 0 {
		level, message = c.Value[:i], c.Value[i+1:]
	}
	if dec, derr := url.QueryUnescape(level); derr == nil {
		level = dec
	}
	if dec, derr := url.QueryUnescape(message); derr == nil {
		message = dec
	}
	return &Flash{Level: level, Message: message}
}
