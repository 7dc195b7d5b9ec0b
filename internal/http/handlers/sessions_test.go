package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/bloghub/internal/http/handlers"
	"github.com/geocoder89/bloghub/internal/session"
	"github.com/gin-gonic/gin"
)

const testCookie = "BLOGSESSION"

type fakeGate struct {
	authenticateFn func(ctx context.Context, c session.Credentials) (session.Token, error)
	invalidated    []string
	invalidateErr  error
}

func (f *fakeGate) Authenticate(ctx context.Context, c session.Credentials) (session.Token, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, c)
	}
	return session.Token{}, session.ErrAuthentication
}

func (f *fakeGate) Invalidate(ctx context.Context, raw string) error {
	f.invalidated = append(f.invalidated, raw)
	return f.invalidateErr
}

type fakeObserver struct {
	logins  []string
	logouts int
}

func (f *fakeObserver) ObserveLogin(result string) { f.logins = append(f.logins, result) }
func (f *fakeObserver) ObserveLogout()             { f.logouts++ }

func sessionRouter(gate *fakeGate, obs *fakeObserver) *gin.Engine {
	h := handlers.NewSessionHandler(gate, session.DefaultPolicy(), testCookie, false, obs)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r
}

func postForm(r http.Handler, path, form string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		form           string
		authenticateFn func(ctx context.Context, c session.Credentials) (session.Token, error)
		wantStatusCode int
		wantLocation   string
		wantCookie     bool
		wantResult     string
	}{
		{
			name: "success",
			form: "email=a%40example.com&password=pw",
			authenticateFn: func(ctx context.Context, c session.Credentials) (session.Token, error) {
				if c.Email != "a@example.com" || c.Password != "pw" {
					return session.Token{}, session.ErrAuthentication
				}
				return session.Token{Value: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
			wantStatusCode: http.StatusFound,
			wantLocation:   "/articles",
			wantCookie:     true,
			wantResult:     "success",
		},
		{
			name:           "bad_credentials",
			form:           "email=a%40example.com&password=nope",
			wantStatusCode: http.StatusFound,
			wantLocation:   "/login?error",
			wantResult:     "rejected",
		},
		{
			name:           "missing_fields",
			form:           "email=a%40example.com",
			wantStatusCode: http.StatusFound,
			wantLocation:   "/login?error",
			wantResult:     "invalid",
		},
		{
			name: "store_error",
			form: "email=a%40example.com&password=pw",
			authenticateFn: func(ctx context.Context, c session.Credentials) (session.Token, error) {
				return session.Token{}, errors.New("redis down")
			},
			wantStatusCode: http.StatusInternalServerError,
			wantResult:     "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &fakeObserver{}
			r := sessionRouter(&fakeGate{authenticateFn: tt.authenticateFn}, obs)

			w := postForm(r, "/login", tt.form)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
			if tt.wantLocation != "" && w.Header().Get("Location") != tt.wantLocation {
				t.Fatalf("got location %q, want %q", w.Header().Get("Location"), tt.wantLocation)
			}

			c := sessionCookie(w)
			if tt.wantCookie {
				if c == nil || c.Value != "tok" || !c.HttpOnly || c.Path != "/" {
					t.Fatalf("unexpected session cookie %+v", c)
				}
			} else if c != nil {
				t.Fatalf("did not expect a session cookie, got %+v", c)
			}

			if len(obs.logins) != 1 || obs.logins[0] != tt.wantResult {
				t.Fatalf("got login results %v, want [%s]", obs.logins, tt.wantResult)
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	gate := &fakeGate{}
	obs := &fakeObserver{}
	r := sessionRouter(gate, obs)

	w := postForm(r, "/logout", "", &http.Cookie{Name: testCookie, Value: "tok"})

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("got %d location=%q", w.Code, w.Header().Get("Location"))
	}
	if len(gate.invalidated) != 1 || gate.invalidated[0] != "tok" {
		t.Fatalf("expected the session to be invalidated, got %v", gate.invalidated)
	}

	c := sessionCookie(w)
	if c == nil || c.MaxAge >= 0 || !strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0") {
		t.Fatalf("expected the cookie to be cleared, got %+v", c)
	}
	if obs.logouts != 1 {
		t.Fatalf("got %d logouts", obs.logouts)
	}
}

func TestLogoutHandler_StoreError(t *testing.T) {
	gate := &fakeGate{invalidateErr: errors.New("redis down")}
	r := sessionRouter(gate, &fakeObserver{})

	w := postForm(r, "/logout", "", &http.Cookie{Name: testCookie, Value: "tok"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", w.Code)
	}
}
