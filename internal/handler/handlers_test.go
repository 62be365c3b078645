package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdnanSameer1724/careers-page-builder/internal/config"
	"github.com/AdnanSameer1724/careers-page-builder/internal/email"
	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/section"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"

	"github.com/DATA-DOG/go-sqlmock"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/lib/pq"
)

var testSigningKey = []byte("test-signing-key")

func newTestServer(t *testing.T, conn *sql.DB) server.Server {
	t.Helper()
	return server.NewServer(
		config.Config{JwtSigningKey: testSigningKey},
		conn,
		mux.NewRouter(),
		nil,
		email.Client{},
		sessions.NewCookieStore([]byte("session-key")),
	)
}

func recruiterClaims() middleware.UserJWT {
	return middleware.UserJWT{
		UserID:      "u1",
		Email:       "recruiter@acme.test",
		CompanyID:   "comp1",
		CompanySlug: "acme",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
}

func signedOnRequest(t *testing.T, svr server.Server, method, target string, body io.Reader, claims middleware.UserJWT) *http.Request {
	t.Helper()
	rr := httptest.NewRecorder()
	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := svr.SessionStore.Get(seed, middleware.SessionName)
	if err != nil {
		t.Fatalf("unable to get session: %v", err)
	}
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := tkn.SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("unable to sign jwt: %v", err)
	}
	sess.Values["jwt"] = ss
	if err := sess.Save(seed, rr); err != nil {
		t.Fatalf("unable to save session: %v", err)
	}

	req := httptest.NewRequest(method, target, body)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	body := map[string]interface{}{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("unable to decode response body: %v", err)
	}
	msg, _ := body["error"].(string)
	return msg
}

func TestWriteStoreError_StoreRejectionIsBadRequest(t *testing.T) {
	rr := httptest.NewRecorder()

	writeStoreError(server.Server{}, rr, &pq.Error{
		Code:    "23505",
		Message: "duplicate key value violates unique constraint",
	})

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if got := decodeErrorBody(t, rr); got != "duplicate key value violates unique constraint" {
		t.Fatalf("error message = %q, want store message passed through", got)
	}
}

func TestWriteStoreError_NoRowsIsNotFound(t *testing.T) {
	rr := httptest.NewRecorder()

	writeStoreError(server.Server{}, rr, sql.ErrNoRows)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if got := decodeErrorBody(t, rr); got != "not found" {
		t.Fatalf("error message = %q, want not found", got)
	}
}

func TestWriteStoreError_UnknownErrorIsGeneric500(t *testing.T) {
	rr := httptest.NewRecorder()

	writeStoreError(server.Server{}, rr, errors.New("connection reset by peer"))

	if rr.Code != 500 {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := decodeErrorBody(t, rr); got != "Oops! An internal error has occurred" {
		t.Fatalf("error message = %q, internal detail must not leak", got)
	}
}

func TestSaveSectionsHandler_DropsCachedCareersPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unable to open sqlmock: %v", err)
	}
	defer db.Close()
	svr := newTestServer(t, db)

	cacheKey := server.CacheKeyCareersPage("acme")
	if err := svr.CacheSet(cacheKey, []byte("stale careers page")); err != nil {
		t.Fatalf("unable to seed cache: %v", err)
	}
	if _, ok := svr.CacheGet(cacheKey); !ok {
		t.Fatalf("seeded cache entry missing")
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM company_section").
		WithArgs("comp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO company_section").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	handler := SaveSectionsHandler(svr, section.NewRepository(db))
	body := strings.NewReader(`{"companyId":"comp1","sections":[{"title":"About Us","content":"We build things."}]}`)
	req := signedOnRequest(t, svr, http.MethodPost, "/sections", body, recruiterClaims())
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}
	if _, ok := svr.CacheGet(cacheKey); ok {
		t.Fatalf("cached careers page for acme survived a section write")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet database expectations: %v", err)
	}
}
