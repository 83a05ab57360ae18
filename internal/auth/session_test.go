package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
)

func cookieFrom(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestSessionCookieFormat(t *testing.T) {
	s := NewSessions("test-secret")
	rr := httptest.NewRecorder()
	s.Create(rr, 7)

	c := cookieFrom(rr)
	if c == nil {
		t.Fatal("missing session cookie")
	}
	if !regexp.MustCompile(`^[0-9]+\.[A-Za-z0-9_-]+$`).MatchString(c.Value) {
		t.Fatalf("bad cookie format: %s", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessions("test-secret")
	rr := httptest.NewRecorder()
	s.Create(rr, 42)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookieFrom(rr))

	uid, ok := s.Parse(req)
	if !ok || uid != 42 {
		t.Fatalf("Parse = (%d, %v), want (42, true)", uid, ok)
	}
}

func TestSessionRejectsTampering(t *testing.T) {
	s := NewSessions("test-secret")
	rr := httptest.NewRecorder()
	s.Create(rr, 42)
	c := cookieFrom(rr)

	// Another user id with the original signature.
	forged := *c
	forged.Value = "43." + regexp.MustCompile(`^[0-9]+\.`).ReplaceAllString(c.Value, "")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&forged)
	if _, ok := s.Parse(req); ok {
		t.Fatal("forged user id accepted")
	}

	// Same cookie, different signing key.
	other := NewSessions("other-secret")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if _, ok := other.Parse(req); ok {
		t.Fatal("cookie accepted across secrets")
	}

	// Garbage values.
	for _, v := range []string{"", "42", "42.", ".sig", "a.b.c"} {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: v})
		if _, ok := s.Parse(req); ok {
			t.Fatalf("malformed cookie %q accepted", v)
		}
	}
}

func TestSessionClear(t *testing.T) {
	s := NewSessions("test-secret")
	rr := httptest.NewRecorder()
	s.Clear(rr)
	c := cookieFrom(rr)
	if c == nil || c.MaxAge != -1 {
		t.Fatal("expected expired cookie")
	}
}

func TestUserContext(t *testing.T) {
	if u := UserFrom(context.Background()); u != nil {
		t.Fatal("empty context must yield nil user")
	}
	want := &models.User{ID: 3, Name: "Ana"}
	ctx := WithUser(context.Background(), want)
	if got := UserFrom(ctx); got != want {
		t.Fatalf("got %+v", got)
	}
}
