package upload

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fileport/service/internal/response"
)

const (
	// FormField is the multipart field carrying the file.
	FormField = "file"

	// multipartOverhead is allowed on top of the file limit for boundaries
	// and part headers.
	multipartOverhead = 64 << 10
	// multipartMemory is kept in memory before parts spill to temp files.
	multipartMemory = 1 << 20

	defaultListLimit = 50
	maxListLimit     = 200
)

// Handler holds HTTP handlers for the upload endpoints.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates an upload Handler accepting files up to maxBytes.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

type uploadResponse struct {
	URL string `json:"url" example:"/uploads/1700000000000-123456789.png"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Stores a single multipart file under a generated name and returns its relative URL.
//	@Tags			files
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"File to upload (max 5 MiB)"
//	@Success		201		{object}	uploadResponse
//	@Failure		400		{object}	response.Envelope
//	@Failure		413		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/files/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	bodyLimit := h.maxBytes + multipartOverhead
	if r.ContentLength > bodyLimit {
		response.PayloadTooLarge(w, "file exceeds upload limit")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "file exceeds upload limit")
			return
		}
		response.BadRequest(w, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile(FormField)
	if err != nil {
		response.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		response.PayloadTooLarge(w, "file exceeds upload limit")
		return
	}

	rec, err := h.svc.Store(r.Context(), File{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: contentType(header.Header.Get("Content-Type"), header.Filename),
		Content:     file,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "upload failed", "original_name", header.Filename, "error", err)
		response.InternalError(w)
		return
	}

	slog.InfoContext(r.Context(), "upload stored", "stored_name", rec.StoredName, "size", rec.Size)
	response.JSON(w, http.StatusCreated, uploadResponse{URL: rec.URL})
}

// List godoc
//
//	@Summary		List uploads
//	@Description	Returns the most recent upload records, newest first.
//	@Tags			files
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum records (1-200, default 50)"
//	@Success		200		{object}	response.Envelope{data=[]Record}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			response.BadRequest(w, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	records, err := h.svc.List(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "list uploads failed", "error", err)
		response.InternalError(w)
		return
	}
	if records == nil {
		records = []Record{}
	}
	response.OK(w, records)
}

// contentType prefers the part's declared type and falls back to the
// file extension.
func contentType(declared, filename string) string {
	if declared != "" {
		return declared
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
