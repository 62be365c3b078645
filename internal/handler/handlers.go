package handler

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"net/http"
	"net/url"
	"time"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"
	"github.com/AdnanSameer1724/careers-page-builder/internal/job"
	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/section"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/snabb/sitemap"
)

// writeStoreError maps persistence failures onto the API error contract:
// store rejections surface as 400 with the store message passed through,
// anything unexpected is a generic 500.
func writeStoreError(svr server.Server, w http.ResponseWriter, err error) {
	if pqErr, ok := err.(*pq.Error); ok {
		svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": pqErr.Message})
		return
	}
	if err == sql.ErrNoRows {
		svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "not found"})
		return
	}
	svr.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "Oops! An internal error has occurred"})
}

func IndexPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.Render(w, http.StatusOK, "index.html", map[string]interface{}{
			"IsSignedOn": middleware.IsSignedOn(r, svr.SessionStore, svr.GetJWTSigningKey()),
		})
	}
}

// careersPageData is the gob-cached portion of an unfiltered careers page.
type careersPageData struct {
	Sections  []section.Section
	Jobs      []*job.Job
	Locations []string
	JobTypes  []string
}

func CareersPageHandler(svr server.Server, companyRepo *company.Repository, sectionRepo *section.Repository, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		slug := vars["slug"]
		comp, err := companyRepo.CompanyBySlug(slug)
		if err == sql.ErrNoRows {
			svr.TEXT(w, http.StatusNotFound, "company not found")
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve company by slug "+slug)
			svr.TEXT(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
			return
		}
		filters := job.ParseFiltersFromQuery(r.URL.Query())
		var data careersPageData
		cacheKey := server.CacheKeyCareersPage(slug)
		cached, ok := svr.CacheGet(cacheKey)
		// only the unfiltered page is cached, filtered views are cheap
		// single-tenant queries
		if !filters.Active() && ok {
			dec := gob.NewDecoder(bytes.NewReader(cached))
			if err := dec.Decode(&data); err != nil {
				svr.Log(err, "unable to decode cached careers page for "+slug)
				ok = false
			}
		} else {
			ok = false
		}
		if !ok {
			data.Sections, err = sectionRepo.SectionsByCompanyID(comp.ID)
			if err != nil {
				svr.Log(err, "unable to retrieve sections for company "+comp.ID)
				svr.TEXT(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
				return
			}
			data.Jobs, err = jobRepo.ActiveJobsByFilters(comp.ID, filters)
			if err != nil {
				svr.Log(err, "unable to retrieve jobs for company "+comp.ID)
				svr.TEXT(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
				return
			}
			data.Locations, data.JobTypes, err = jobRepo.FilterOptions(comp.ID)
			if err != nil {
				svr.Log(err, "unable to retrieve filter options for company "+comp.ID)
				svr.TEXT(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
				return
			}
			if !filters.Active() {
				buf := &bytes.Buffer{}
				if err := gob.NewEncoder(buf).Encode(data); err != nil {
					svr.Log(err, "unable to encode careers page for "+slug)
				} else if err := svr.CacheSet(cacheKey, buf.Bytes()); err != nil {
					svr.Log(err, "unable to cache careers page for "+slug)
				}
			}
		}
		svr.Render(w, http.StatusOK, "careers.html", map[string]interface{}{
			"Company":        comp,
			"Sections":       data.Sections,
			"Jobs":           data.Jobs,
			"JobCount":       len(data.Jobs),
			"Locations":      data.Locations,
			"JobTypes":       data.JobTypes,
			"SearchFilter":   filters.Search,
			"LocationFilter": filters.LocationOrAll(),
			"TypeFilter":     filters.JobTypeOrAll(),
			"FilterQuery":    filters.Encode(),
			"HasFilters":     filters.Active(),
		})
	}
}

func EditPageHandler(svr server.Server, companyRepo *company.Repository, sectionRepo *section.Repository, jobRepo *job.Repository) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			vars := mux.Vars(r)
			slug := vars["slug"]
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.Log(err, "unable to retrieve user from JWT")
				svr.Redirect(w, r, http.StatusUnauthorized, "/auth")
				return
			}
			if profile.CompanySlug != slug {
				svr.TEXT(w, http.StatusForbidden, "you cannot edit this careers page")
				return
			}
			comp, err := companyRepo.CompanyBySlug(slug)
			if err != nil {
				svr.Log(err, "unable to retrieve company by slug "+slug)
				svr.TEXT(w, http.StatusNotFound, "company not found")
				return
			}
			sections, err := sectionRepo.SectionsByCompanyID(comp.ID)
			if err != nil {
				svr.Log(err, "unable to retrieve sections for company "+comp.ID)
				svr.TEXT(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
				return
			}
			jobs, err := jobRepo.JobsByCompanyID(comp.ID)
			if err != nil {
				svr.Log(err, "unable to retrieve jobs for company "+comp.ID)
				svr.TEXT(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
				return
			}
			svr.Render(w, http.StatusOK, "edit.html", map[string]interface{}{
				"Company":        comp,
				"Sections":       sections,
				"Jobs":           jobs,
				"RecruiterEmail": profile.Email,
			})
		},
	)
}

func SitemapIndexHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slugs, err := companyRepo.GetCompanySlugs()
		if err != nil {
			svr.Log(err, "companyRepo.GetCompanySlugs")
			svr.TEXT(w, http.StatusInternalServerError, "unable to fetch sitemap")
			return
		}
		now := time.Now().UTC()
		sitemapFile := sitemap.New()
		sitemapFile.Add(&sitemap.URL{
			Loc:     svr.GetConfig().URLProtocol + svr.GetConfig().SiteHost + "/",
			LastMod: &now,
		})
		for _, s := range slugs {
			sitemapFile.Add(&sitemap.URL{
				Loc:        svr.GetConfig().URLProtocol + svr.GetConfig().SiteHost + "/" + url.PathEscape(s) + "/careers",
				LastMod:    &now,
				ChangeFreq: sitemap.Daily,
			})
		}
		buf := new(bytes.Buffer)
		if _, err := sitemapFile.WriteTo(buf); err != nil {
			svr.Log(err, "sitemapFile.WriteTo")
			svr.TEXT(w, http.StatusInternalServerError, "unable to save sitemap file")
			return
		}
		svr.XML(w, http.StatusOK, buf.Bytes())
	}
}

func RobotsTxtHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/robots.txt")
}

func PermanentRedirectHandler(svr server.Server, dst string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.Redirect(w, r, http.StatusMovedPermanently, dst)
	}
}
