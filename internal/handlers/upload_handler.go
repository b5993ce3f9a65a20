package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"goboard/internal/security"
	"goboard/internal/service"
)

// UploadHandler handles the file upload page and form. All routes protected.
type UploadHandler struct {
	uploadService *service.UploadService
	csrf          *security.CSRFGenerator
	templates     *template.Template
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *service.UploadService, csrf *security.CSRFGenerator, templates *template.Template) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		csrf:          csrf,
		templates:     templates,
	}
}

// ShowUpload renders the upload form
func (h *UploadHandler) ShowUpload(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	data := pageData(w, r, user)
	data["Title"] = "Upload a file"
	data["CSRFToken"] = ""
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if token, err := h.csrf.GenerateToken(cookie.Value); err == nil {
			data["CSRFToken"] = token
		}
	}
	renderTemplate(h.templates, w, "upload.tmpl", data)
}

// Upload accepts a single file per request. The form is already parsed (and
// size-capped) by the middleware chain; extension and filename checks happen
// in the upload service.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	file, header, err := r.FormFile("file")
	if err != nil {
		SetFlash(w, "warning", "No file was attached.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if _, err := h.uploadService.Save(user.ID, header.Filename, file); err != nil {
		switch {
		case errors.Is(err, service.ErrNoFile):
			SetFlash(w, "warning", "No file was attached.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
		case errors.Is(err, service.ErrTypeNotAllowed):
			SetFlash(w, "danger", "That file type is not allowed.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to save upload", err)
		}
		return
	}

	SetFlash(w, "success", "File uploaded.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
