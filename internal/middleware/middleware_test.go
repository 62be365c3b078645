package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/sessions"
)

var testJWTKey = []byte("test-signing-key")

func signedOnRequest(t *testing.T, store *sessions.CookieStore, claims UserJWT) *http.Request {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := store.Get(req, SessionName)
	if err != nil {
		t.Fatalf("unable to get session: %v", err)
	}
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := tkn.SignedString(testJWTKey)
	if err != nil {
		t.Fatalf("unable to sign jwt: %v", err)
	}
	sess.Values["jwt"] = ss
	if err := sess.Save(req, rr); err != nil {
		t.Fatalf("unable to save session: %v", err)
	}

	authed := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		authed.AddCookie(c)
	}
	return authed
}

func TestGetUserFromJWT_RoundTrip(t *testing.T) {
	store := sessions.NewCookieStore([]byte("session-key"))
	req := signedOnRequest(t, store, UserJWT{
		UserID:      "u1",
		Email:       "recruiter@acme.test",
		CompanyID:   "comp1",
		CompanySlug: "acme",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})

	claims, err := GetUserFromJWT(req, store, testJWTKey)
	if err != nil {
		t.Fatalf("GetUserFromJWT: %v", err)
	}
	if claims.CompanyID != "comp1" || claims.CompanySlug != "acme" {
		t.Fatalf("claims = %+v, want comp1/acme", claims)
	}
}

func TestGetUserFromJWT_ExpiredToken(t *testing.T) {
	store := sessions.NewCookieStore([]byte("session-key"))
	req := signedOnRequest(t, store, UserJWT{
		UserID:    "u1",
		CompanyID: "comp1",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	})

	if _, err := GetUserFromJWT(req, store, testJWTKey); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestRecruiterAuthenticatedMiddleware_RejectsAnonymous(t *testing.T) {
	store := sessions.NewCookieStore([]byte("session-key"))
	called := false
	h := RecruiterAuthenticatedMiddleware(store, testJWTKey, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/acme/edit", nil))

	if called {
		t.Fatal("anonymous request reached protected handler")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestRecruiterAuthenticatedMiddleware_RejectsClaimsWithoutCompany(t *testing.T) {
	store := sessions.NewCookieStore([]byte("session-key"))
	req := signedOnRequest(t, store, UserJWT{
		UserID: "u1",
		Email:  "recruiter@acme.test",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})

	called := false
	h := RecruiterAuthenticatedMiddleware(store, testJWTKey, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if called {
		t.Fatal("claims without a company reached protected handler")
	}
}

func TestMachineAuthenticatedMiddleware(t *testing.T) {
	called := false
	h := MachineAuthenticatedMiddleware("secret", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/x/task/cleanup", nil))
	if called || rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: called=%v status=%d, want 401", called, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/x/task/cleanup", nil)
	req.Header.Set("x-machine-token", "secret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("valid machine token rejected")
	}
}
