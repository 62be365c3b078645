package handler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"
	"github.com/AdnanSameer1724/careers-page-builder/internal/database"
	"github.com/AdnanSameer1724/careers-page-builder/internal/imagemeta"
	"github.com/AdnanSameer1724/careers-page-builder/internal/job"
	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"

	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
)

const maxMediaFileSize = 5 * 1024 * 1024

var allowedMediaTypes = []string{"image/png", "image/jpeg", "image/jpg"}

func isAllowedMediaType(contentType string) bool {
	for _, allowed := range allowedMediaTypes {
		if allowed == contentType {
			return true
		}
	}
	return false
}

func readMediaUpload(svr server.Server, w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxMediaFileSize))
	imageFile, header, err := r.FormFile("image")
	if err != nil {
		svr.Log(err, "unable to read media file")
		svr.JSON(w, http.StatusBadRequest, nil)
		return nil, "", false
	}
	defer imageFile.Close()
	fileBytes, err := io.ReadAll(imageFile)
	if err != nil {
		svr.Log(err, "unable to read media file content")
		svr.JSON(w, http.StatusRequestEntityTooLarge, nil)
		return nil, "", false
	}
	if header.Size > int64(maxMediaFileSize) {
		svr.Log(errors.New("media file is too large"), fmt.Sprintf("media file too large: %d > %d", header.Size, maxMediaFileSize))
		svr.JSON(w, http.StatusRequestEntityTooLarge, nil)
		return nil, "", false
	}
	contentType := http.DetectContentType(fileBytes)
	if !isAllowedMediaType(contentType) {
		svr.Log(errors.New("invalid media content type"), fmt.Sprintf("media file %s is not one of the allowed media types: %+v", contentType, allowedMediaTypes))
		svr.JSON(w, http.StatusUnsupportedMediaType, nil)
		return nil, "", false
	}
	// decode and re-encode so the stored bytes are always a real image
	decImage, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		svr.Log(err, "unable to decode image from bytes")
		svr.JSON(w, http.StatusBadRequest, nil)
		return nil, "", false
	}
	encoded, ok := encodeImage(svr, w, decImage, contentType)
	if !ok {
		return nil, "", false
	}
	return encoded, contentType, true
}

func encodeImage(svr server.Server, w http.ResponseWriter, img image.Image, contentType string) ([]byte, bool) {
	buf := new(bytes.Buffer)
	switch contentType {
	case "image/jpg", "image/jpeg":
		if err := jpeg.Encode(buf, img, nil); err != nil {
			svr.Log(err, "unable to encode image into jpeg")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return nil, false
		}
	case "image/png":
		if err := png.Encode(buf, img); err != nil {
			svr.Log(err, "unable to encode image into png")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return nil, false
		}
	default:
		svr.Log(errors.New("content type not supported for encoding"), fmt.Sprintf("content type %s not supported for encoding", contentType))
		svr.JSON(w, http.StatusInternalServerError, nil)
		return nil, false
	}
	return buf.Bytes(), true
}

func SaveMediaPageHandler(svr server.Server) http.HandlerFunc {
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
			fileBytes, contentType, ok := readMediaUpload(svr, w, r)
			if !ok {
				return
			}
			id, err := database.SaveMedia(svr.Conn, database.Media{CompanyID: profile.CompanyID, Bytes: fileBytes, MediaType: contentType})
			if err != nil {
				svr.Log(err, "unable to save media image to db")
				svr.JSON(w, http.StatusInternalServerError, nil)
				return
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"id": id})
		},
	)
}

func UpdateMediaPageHandler(svr server.Server) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			vars := mux.Vars(r)
			mediaID := vars["id"]
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.Log(err, "unable to retrieve user from JWT")
				svr.JSON(w, http.StatusForbidden, nil)
				return
			}
			existing, err := database.GetMediaByID(svr.Conn, mediaID)
			if err != nil {
				svr.Log(err, fmt.Sprintf("unable to retrieve media by ID: '%s'", mediaID))
				writeStoreError(svr, w, err)
				return
			}
			if existing.CompanyID != profile.CompanyID {
				svr.JSON(w, http.StatusForbidden, map[string]interface{}{"error": "you cannot update media for this company"})
				return
			}
			fileBytes, contentType, ok := readMediaUpload(svr, w, r)
			if !ok {
				return
			}
			if err := database.UpdateMedia(svr.Conn, database.Media{CompanyID: existing.CompanyID, Bytes: fileBytes, MediaType: contentType}, mediaID); err != nil {
				svr.Log(err, "unable to update media image to db")
				svr.JSON(w, http.StatusInternalServerError, nil)
				return
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"id": mediaID})
		},
	)
}

// RetrieveMetaImagePageHandler serves the generated social preview card for a
// company's careers page.
func RetrieveMetaImagePageHandler(svr server.Server, companyRepo *company.Repository, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		slug := vars["slug"]
		comp, err := companyRepo.CompanyBySlug(slug)
		if err != nil {
			svr.Log(err, "unable to retrieve company by slug "+slug)
			svr.MEDIA(w, http.StatusNotFound, []byte{}, "image/png")
			return
		}
		jobs, err := jobRepo.ActiveJobsByFilters(comp.ID, job.Filters{})
		if err != nil {
			svr.Log(err, "unable to retrieve jobs for company "+comp.ID)
			svr.MEDIA(w, http.StatusNotFound, []byte{}, "image/png")
			return
		}
		media, err := imagemeta.GenerateImageForCompany(comp, len(jobs))
		if err != nil {
			svr.Log(err, "unable to generate meta image for "+slug)
			svr.MEDIA(w, http.StatusNotFound, []byte{}, "image/png")
			return
		}
		mediaBytes, err := io.ReadAll(media)
		if err != nil {
			svr.Log(err, "unable to read generated meta image for "+slug)
			svr.MEDIA(w, http.StatusNotFound, []byte{}, "image/png")
			return
		}
		svr.MEDIA(w, http.StatusOK, mediaBytes, "image/png")
	}
}

func RetrieveMediaPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		mediaID := vars["id"]
		media, err := database.GetMediaByID(svr.Conn, mediaID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve media by ID: '%s'", mediaID))
			svr.MEDIA(w, http.StatusNotFound, media.Bytes, media.MediaType)
			return
		}
		he, errH := strconv.Atoi(r.URL.Query().Get("h"))
		wi, errW := strconv.Atoi(r.URL.Query().Get("w"))
		if errH != nil || errW != nil {
			svr.MEDIA(w, http.StatusOK, media.Bytes, media.MediaType)
			return
		}
		if !isAllowedMediaType(media.MediaType) {
			svr.Log(errors.New("invalid media content type"), fmt.Sprintf("media file %s is not one of the allowed media types: %+v", media.MediaType, allowedMediaTypes))
			svr.JSON(w, http.StatusUnsupportedMediaType, nil)
			return
		}
		decImage, _, err := image.Decode(bytes.NewReader(media.Bytes))
		if err != nil {
			svr.Log(err, "unable to decode image from bytes")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		m := resize.Resize(uint(wi), uint(he), decImage, resize.Lanczos3)
		resized, ok := encodeImage(svr, w, m, media.MediaType)
		if !ok {
			return
		}
		svr.MEDIA(w, http.StatusOK, resized, media.MediaType)
	}
}
