package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"
	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
)

func UpdateCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.Log(err, "unable to retrieve user from JWT")
				svr.JSON(w, http.StatusForbidden, nil)
				return
			}
			vars := mux.Vars(r)
			companySlug := vars["slug"]
			if companySlug != profile.CompanySlug {
				svr.JSON(w, http.StatusForbidden, map[string]interface{}{"error": "you cannot edit this company"})
				return
			}
			rq := &company.CompanyRqUpdate{}
			if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "malformed request body"})
				return
			}
			strict := bluemonday.StrictPolicy()
			rq.Name = strict.Sanitize(rq.Name)
			rq.Tagline = strict.Sanitize(rq.Tagline)
			rq.CultureVideoURL = strict.Sanitize(rq.CultureVideoURL)
			if err := companyRepo.UpdateCompany(companySlug, rq); err != nil {
				svr.Log(err, fmt.Sprintf("unable to update company %s", companySlug))
				writeStoreError(svr, w, err)
				return
			}
			updated, err := companyRepo.CompanyBySlug(companySlug)
			if err != nil {
				svr.Log(err, fmt.Sprintf("unable to retrieve company %s after update", companySlug))
				writeStoreError(svr, w, err)
				return
			}
			svr.CacheInvalidateCareersPage(companySlug)
			svr.JSON(w, http.StatusOK, updated)
		},
	)
}
