package bootstrap_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artpar/actionkit/adapters/hasher"
	"github.com/artpar/actionkit/bootstrap"
	"github.com/artpar/actionkit/config"
)

func memoryApp(t *testing.T) *bootstrap.App {
	t.Helper()
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Database.Driver = "memory"
	cfg.Logging.Level = "error"

	app, err := bootstrap.NewWithConfig(cfg, "")
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	return app
}

func TestBootstrap_Components(t *testing.T) {
	app := memoryApp(t)
	defer app.Shutdown()

	if app.HTTPServer == nil {
		t.Fatal("HTTPServer should not be nil")
	}
	if app.Registry == nil {
		t.Fatal("Registry should not be nil")
	}

	wantActions := []string{
		"tasks.create", "tasks.destroy", "tasks.edit", "tasks.index",
		"tasks.new", "tasks.show", "tasks.toggle", "tasks.update",
	}
	got := app.Registry.Names()
	if len(got) != len(wantActions) {
		t.Fatalf("registered actions = %v", got)
	}
	for i, name := range wantActions {
		if got[i] != name {
			t.Errorf("action[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestBootstrap_SQLiteStore(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Database.DSN = filepath.Join(t.TempDir(), "boot-test.db")
	cfg.Logging.Level = "error"

	app, err := bootstrap.NewWithConfig(cfg, "")
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	if app.DB == nil {
		t.Error("DB should not be nil for sqlite driver")
	}
}

func TestBootstrap_HTTPRoundTrip(t *testing.T) {
	app := memoryApp(t)
	defer app.Shutdown()
	router := app.HTTPServer.Handler

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("root redirects to tasks", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		if w.Code != http.StatusFound {
			t.Errorf("status = %d", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/tasks" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("create then list", func(t *testing.T) {
		form := url.Values{}
		form.Set("task[title]", "Ship the release")
		form.Set("task[notes]", "by Friday")

		r := httptest.NewRequest("POST", "/tasks", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusSeeOther {
			t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/tasks?format=json", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("list status = %d", w.Code)
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		data, _ := body["data"].([]any)
		if len(data) != 1 {
			t.Fatalf("data = %v", body["data"])
		}
		first, _ := data[0].(map[string]any)
		if first["title"] != "Ship the release" {
			t.Errorf("task = %v", first)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/tasks?format=json", strings.NewReader("task[title]="))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("missing task is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/tasks/nope?format=json", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("collection format extension", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/tasks.json", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := body["data"].([]any); !ok {
			t.Errorf("data = %v", body["data"])
		}
	})

	t.Run("member format extension", func(t *testing.T) {
		form := url.Values{}
		form.Set("task[title]", "Review extension routing")
		r := httptest.NewRequest("POST", "/tasks", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("create status = %d", w.Code)
		}

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/tasks.json", nil))
		var body map[string]any
		json.Unmarshal(w.Body.Bytes(), &body) //nolint:errcheck
		data, _ := body["data"].([]any)
		if len(data) == 0 {
			t.Fatal("no tasks listed")
		}
		first, _ := data[0].(map[string]any)
		id, _ := first["id"].(string)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/tasks/"+id+".xml", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("show status = %d, body = %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
			t.Errorf("content type = %q", ct)
		}
		if !strings.Contains(w.Body.String(), "Review extension routing") {
			t.Errorf("body = %s", w.Body.String())
		}
	})

	t.Run("method override deletes", func(t *testing.T) {
		form := url.Values{}
		form.Set("task[title]", "Temp")
		r := httptest.NewRequest("POST", "/tasks", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("create status = %d", w.Code)
		}

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/tasks?format=json", nil))
		var body map[string]any
		json.Unmarshal(w.Body.Bytes(), &body) //nolint:errcheck
		data, _ := body["data"].([]any)
		if len(data) == 0 {
			t.Fatal("no tasks to delete")
		}
		first, _ := data[0].(map[string]any)
		id, _ := first["id"].(string)

		del := url.Values{}
		del.Set("_method", "delete")
		r = httptest.NewRequest("POST", "/tasks/"+id, strings.NewReader(del.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != http.StatusSeeOther {
			t.Errorf("delete status = %d", w.Code)
		}
	})
}

func TestTokenAuthenticator(t *testing.T) {
	auth := bootstrap.NewTokenAuthenticator("s3cret", hasher.Fake{})

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer s3cret")
		actor, err := auth.Authenticate(r)
		if err != nil || actor != "admin" {
			t.Errorf("actor = %v, err = %v", actor, err)
		}
	})

	t.Run("cookie fallback", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "auth_token", Value: "s3cret"})
		actor, err := auth.Authenticate(r)
		if err != nil || actor != "admin" {
			t.Errorf("actor = %v, err = %v", actor, err)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer wrong")
		if _, err := auth.Authenticate(r); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("missing token", func(t *testing.T) {
		if _, err := auth.Authenticate(httptest.NewRequest("GET", "/", nil)); err == nil {
			t.Error("expected error")
		}
	})
}

func TestNewTemplates(t *testing.T) {
	tmpl, err := bootstrap.NewTemplates()
	if err != nil {
		t.Fatalf("NewTemplates: %v", err)
	}
	got, err := tmpl.RenderPartial("shared/flash", map[string]any{"type": "notice", "message": "hi"})
	if err != nil {
		t.Fatalf("RenderPartial: %v", err)
	}
	if !strings.Contains(got, "hi") {
		t.Errorf("flash partial = %q", got)
	}
}
