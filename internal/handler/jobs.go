package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AdnanSameer1724/careers-page-builder/internal/job"
	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
)

func CreateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
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
			jobRq := &job.JobRq{}
			if err := json.NewDecoder(r.Body).Decode(&jobRq); err != nil {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "malformed request body"})
				return
			}
			if jobRq.CompanyID == "" {
				jobRq.CompanyID = profile.CompanyID
			}
			if jobRq.CompanyID != profile.CompanyID {
				svr.JSON(w, http.StatusForbidden, map[string]interface{}{"error": "you cannot post jobs for this company"})
				return
			}
			sanitizeJobFields(&jobRq.Title, &jobRq.Location, &jobRq.JobType, &jobRq.Department, &jobRq.Description, &jobRq.Requirements)
			if jobRq.Title == "" {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "title cannot be empty"})
				return
			}
			j, err := jobRepo.SaveJob(jobRq)
			if err != nil {
				svr.Log(err, fmt.Sprintf("unable to save job request: %#v", jobRq))
				writeStoreError(svr, w, err)
				return
			}
			svr.CacheInvalidateCareersPage(profile.CompanySlug)
			svr.JSON(w, http.StatusOK, j)
		},
	)
}

func UpdateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
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
			jobID := vars["id"]
			existing, err := jobRepo.JobByID(jobID)
			if err == sql.ErrNoRows {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "not found"})
				return
			}
			if err != nil {
				svr.Log(err, fmt.Sprintf("unable to retrieve job %s", jobID))
				writeStoreError(svr, w, err)
				return
			}
			if existing.CompanyID != profile.CompanyID {
				svr.JSON(w, http.StatusForbidden, map[string]interface{}{"error": "you cannot edit jobs for this company"})
				return
			}
			jobRq := &job.JobRqUpdate{}
			if err := json.NewDecoder(r.Body).Decode(&jobRq); err != nil {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "malformed request body"})
				return
			}
			sanitizeJobFields(&jobRq.Title, &jobRq.Location, &jobRq.JobType, &jobRq.Department, &jobRq.Description, &jobRq.Requirements)
			if jobRq.Title == "" {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "title cannot be empty"})
				return
			}
			if err := jobRepo.UpdateJob(jobRq, jobID); err != nil {
				svr.Log(err, fmt.Sprintf("unable to update job %s", jobID))
				writeStoreError(svr, w, err)
				return
			}
			updated, err := jobRepo.JobByID(jobID)
			if err != nil {
				svr.Log(err, fmt.Sprintf("unable to retrieve job %s after update", jobID))
				writeStoreError(svr, w, err)
				return
			}
			svr.CacheInvalidateCareersPage(profile.CompanySlug)
			svr.JSON(w, http.StatusOK, updated)
		},
	)
}

func DeleteJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
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
			jobID := vars["id"]
			existing, err := jobRepo.JobByID(jobID)
			if err == sql.ErrNoRows {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "not found"})
				return
			}
			if err != nil {
				svr.Log(err, fmt.Sprintf("unable to retrieve job %s", jobID))
				writeStoreError(svr, w, err)
				return
			}
			if existing.CompanyID != profile.CompanyID {
				svr.JSON(w, http.StatusForbidden, map[string]interface{}{"error": "you cannot delete jobs for this company"})
				return
			}
			if err := jobRepo.DeleteJob(jobID); err != nil {
				svr.Log(err, fmt.Sprintf("unable to delete job %s", jobID))
				writeStoreError(svr, w, err)
				return
			}
			svr.CacheInvalidateCareersPage(profile.CompanySlug)
			svr.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
		},
	)
}

func sanitizeJobFields(fields ...*string) {
	strict := bluemonday.StrictPolicy()
	for _, f := range fields {
		*f = strict.Sanitize(*f)
	}
}
