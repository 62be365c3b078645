package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"
	"github.com/AdnanSameer1724/careers-page-builder/internal/email"
	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"
	"github.com/AdnanSameer1724/careers-page-builder/internal/user"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/segmentio/ksuid"
)

func GetAuthPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.Render(w, http.StatusOK, "auth.html", nil)
	}
}

// RequestTokenSignOn emails a one-time sign-on link to a recruiter.
func RequestTokenSignOn(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			Email string `json:"email"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, nil)
			return
		}
		if !svr.IsEmail(req.Email) {
			svr.JSON(w, http.StatusBadRequest, nil)
			return
		}
		// only provisioned recruiters get a link, but an unknown address
		// still answers 200 so accounts cannot be enumerated
		if _, err := userRepo.GetUser(req.Email); err == sql.ErrNoRows {
			svr.JSON(w, http.StatusOK, nil)
			return
		} else if err != nil {
			svr.Log(err, "unable to look up recruiter account")
			svr.JSON(w, http.StatusBadRequest, nil)
			return
		}
		k, err := ksuid.NewRandom()
		if err != nil {
			svr.Log(err, "unable to generate token")
			svr.JSON(w, http.StatusBadRequest, nil)
			return
		}
		err = userRepo.SaveTokenSignOn(req.Email, k.String())
		if err != nil {
			svr.Log(err, "unable to save sign on token")
			svr.JSON(w, http.StatusBadRequest, nil)
			return
		}
		signOnURL := fmt.Sprintf("%s%s/x/auth/%s", svr.GetConfig().URLProtocol, svr.GetConfig().SiteHost, k.String())
		err = svr.GetEmail().SendEmail(
			email.Address{Name: svr.GetEmail().DefaultSenderName(), Email: svr.GetEmail().NoReplySenderAddress()},
			email.Address{Email: req.Email},
			fmt.Sprintf("Sign On on %s", svr.GetConfig().SiteName),
			fmt.Sprintf("Sign On on %s %s", svr.GetConfig().SiteName, signOnURL),
		)
		if err != nil {
			svr.Log(err, "unable to send sign on email")
			svr.JSON(w, http.StatusBadRequest, nil)
			return
		}
		svr.JSON(w, http.StatusOK, nil)
	}
}

// VerifyTokenSignOn exchanges a sign-on token for a session JWT scoped to the
// recruiter's company and redirects to that company's edit page.
func VerifyTokenSignOn(svr server.Server, userRepo *user.Repository, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		token := vars["token"]
		u, err := userRepo.GetUserFromToken(token)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to validate signon token %s", token))
			svr.TEXT(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		comp, err := companyRepo.CompanyByID(u.CompanyID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to find company %s for user %s", u.CompanyID, u.ID))
			svr.TEXT(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err != nil {
			svr.TEXT(w, http.StatusInternalServerError, "Invalid or expired token")
			return
		}
		stdClaims := &jwt.StandardClaims{
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour).UTC().Unix(),
			IssuedAt:  time.Now().UTC().Unix(),
			Issuer:    svr.GetConfig().URLProtocol + svr.GetConfig().SiteHost,
		}
		claims := middleware.UserJWT{
			UserID:         u.ID,
			Email:          u.Email,
			CompanyID:      comp.ID,
			CompanySlug:    comp.Slug,
			StandardClaims: *stdClaims,
		}
		tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		ss, err := tkn.SignedString(svr.GetJWTSigningKey())
		if err != nil {
			svr.Log(err, "unable to sign jwt")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		sess.Values["jwt"] = ss
		if err := sess.Save(r, w); err != nil {
			svr.Log(err, "unable to save jwt into session cookie")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.Redirect(w, r, http.StatusMovedPermanently, fmt.Sprintf("/%s/edit", comp.Slug))
	}
}
