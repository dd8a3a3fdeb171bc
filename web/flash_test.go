package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artpar/actionkit/web"
)

func TestFlash_RoundTrip(t *testing.T) {
	setRec := httptest.NewRecorder()
	web.SetFlash(setRec, "notice", "Task created")

	cookies := setRec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookies[0])
	takeRec := httptest.NewRecorder()

	f := web.TakeFlash(takeRec, r)
	if f == nil {
		t.Fatal("TakeFlash returned nil")
	}
	if f.Type != "notice" || f.Message != "Task created" {
		t.Errorf("flash = %+v", f)
	}

	// Taking must expire the cookie.
	var cleared bool
	for _, c := range takeRec.Result().Cookies() {
		if c.Name == cookies[0].Name && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected clearing cookie after take")
	}
}

func TestFlash_TakeWithoutCookie(t *testing.T) {
	w := httptest.NewRecorder()
	if f := web.TakeFlash(w, httptest.NewRequest("GET", "/", nil)); f != nil {
		t.Errorf("flash = %+v, want nil", f)
	}
}

func TestFlash_GarbageValueIgnored(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "actionkit_flash", Value: "%%not-base64%%"})
	w := httptest.NewRecorder()
	if f := web.TakeFlash(w, r); f != nil {
		t.Errorf("flash = %+v, want nil", f)
	}
}
