package resume

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/interviai/backend/internal/model/user"
	resumeservice "github.com/interviai/backend/internal/service/resume"
	"github.com/interviai/backend/pkg/utils"
)

// Handler exposes the resume upload route.
type Handler struct {
	svc      *resumeservice.Service
	maxBytes int64
}

// New creates the resume handler with the configured upload size limit.
func New(svc *resumeservice.Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// RegisterRoutes mounts the upload route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/resumeupload", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "File size too large. Maximum size is 10MB.")
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "No user id provided")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid file type. Only PDF documents are allowed.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	summary, err := h.svc.ProcessUpload(r.Context(), userID, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, resumeservice.ErrNoText):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Upload failed")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return contentType == "application/pdf"
}
