package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/bloghub/internal/auth"
	"github.com/geocoder89/bloghub/internal/config"
	apphttp "github.com/geocoder89/bloghub/internal/http"
	"github.com/geocoder89/bloghub/internal/observability"
	"github.com/geocoder89/bloghub/internal/service"
	"github.com/geocoder89/bloghub/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const cookieName = "BLOGSESSION"

func testConfig() config.Config {
	return config.Config{
		Env:               "test",
		StorageDriver:     config.StorageMemory,
		SessionStore:      config.SessionStoreMemory,
		SessionSecret:     "test-session-secret",
		SessionTTLMinutes: 30,
		SessionCookie:     cookieName,
		MaxBodyBytes:      1 << 20,
		LoginRateLimit:    100,
	}
}

type userStore interface {
	service.CredentialStore
	session.CredentialReader
}

type testApp struct {
	router   *gin.Engine
	sessions *session.MemoryStore
}

func newTestApp(t *testing.T, articles service.ArticleStore, users userStore) testApp {
	t.Helper()
	return newTestAppWithConfig(t, testConfig(), articles, users)
}

func newTestAppWithConfig(t *testing.T, cfg config.Config, articles service.ArticleStore, users userStore) testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg := prometheus.NewRegistry()
	sessions := session.NewMemoryStore()
	gate := session.NewGate(users, sessions, auth.NewManager(cfg.SessionSecret, cfg.SessionTTL()))

	router, err := apphttp.NewRouter(logger, cfg, apphttp.Deps{
		Articles: service.NewArticleService(articles),
		Users:    service.NewUserService(users),
		Gate:     gate,
		Policy:   session.DefaultPolicy(),
		Prom:     observability.NewProm(reg),
		Gatherer: reg,
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	return testApp{router: router, sessions: sessions}
}

func (a testApp) do(t *testing.T, method, path, contentType, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a testApp) doJSON(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, method, path, "application/json", body, cookie)
}

// signUpAndLogin registers through the JSON endpoint and logs in through
// the form, returning the session cookie.
func (a testApp) signUpAndLogin(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	w := a.doJSON(t, http.MethodPost, "/user", `{"email":"`+email+`","password":"`+password+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup: got %d body=%s", w.Code, w.Body.String())
	}

	w = a.login(t, email, password)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/articles" {
		t.Fatalf("login: got %d location=%q", w.Code, w.Header().Get("Location"))
	}

	c := extractSessionCookie(w)
	if c == nil {
		t.Fatalf("login did not set %s", cookieName)
	}
	return c
}

func (a testApp) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := "email=" + strings.ReplaceAll(email, "@", "%40") + "&password=" + password
	return a.do(t, http.MethodPost, "/login", "application/x-www-form-urlencoded", form, nil)
}

func extractSessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

type articleJSON struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %T: %v body=%s", out, err, w.Body.String())
	}
	return out
}
