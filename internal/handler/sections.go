package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/section"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"

	"github.com/microcosm-cc/bluemonday"
)

// SaveSectionsHandler replaces the whole section set for a company with the
// submitted ordered list. Blank-title drafts are dropped and the remaining
// drafts get contiguous order indices from their list position.
func SaveSectionsHandler(svr server.Server, sectionRepo *section.Repository) http.HandlerFunc {
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
			req := &section.ReconcileRq{}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "malformed request body"})
				return
			}
			if req.CompanyID == "" {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "companyId cannot be empty"})
				return
			}
			if req.CompanyID != profile.CompanyID {
				svr.JSON(w, http.StatusForbidden, map[string]interface{}{"error": "you cannot edit sections for this company"})
				return
			}
			strict := bluemonday.StrictPolicy()
			ugc := bluemonday.UGCPolicy()
			for i := range req.Sections {
				req.Sections[i].Title = strict.Sanitize(req.Sections[i].Title)
				req.Sections[i].Content = ugc.Sanitize(req.Sections[i].Content)
				req.Sections[i].SectionType = strict.Sanitize(req.Sections[i].SectionType)
			}
			if err := sectionRepo.ReplaceSections(req.CompanyID, req.Sections); err != nil {
				svr.Log(err, fmt.Sprintf("unable to replace sections for company %s", req.CompanyID))
				writeStoreError(svr, w, err)
				return
			}
			svr.CacheInvalidateCareersPage(profile.CompanySlug)
			svr.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
		},
	)
}
