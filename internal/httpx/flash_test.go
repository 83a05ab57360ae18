package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	rr := httptest.NewRecorder()
	SetFlash(rr, "warning", "Já existe um produto com esse nome (ID #3).")

	var flashCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashCookieName {
			flashCookie = c
		}
	}
	if flashCookie == nil {
		t.Fatal("missing flash cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flashCookie)
	rr2 := httptest.NewRecorder()
	f := PopFlash(rr2, req)
	if f == nil {
		t.Fatal("flash not returned")
	}
	if f.Level != "warning" {
		t.Errorf("level = %q", f.Level)
	}
	if f.Message != "Já existe um produto com esse nome (ID #3)." {
		t.Errorf("message = %q", f.Message)
	}

	// Pop must clear the cookie.
	cleared := false
	for _, c := range rr2.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie not cleared")
	}
}

func TestPopFlashWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if f := PopFlash(httptest.NewRecorder(), req); f != nil {
		t.Fatalf("expected nil, got %+v", f)
	}
}
