package applog

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fileport/service/internal/response"
)

// maxIngestBytes caps a single ingested log body.
const maxIngestBytes = 1 << 20

// Handler exposes the Logger over HTTP.
type Handler struct {
	logger *Logger
}

// NewHandler creates a log ingestion Handler.
func NewHandler(l *Logger) *Handler {
	return &Handler{logger: l}
}

// Append godoc
//
//	@Summary		Append to the default log
//	@Description	Appends the raw request body verbatim to the default log file.
//	@Tags			logs
//	@Accept			plain
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		413	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/logs [post]
func (h *Handler) Append(w http.ResponseWriter, r *http.Request) {
	h.appendTo(w, r, h.logger.DefaultFile)
}

// AppendTo godoc
//
//	@Summary		Append to a named log
//	@Description	Appends the raw request body verbatim to the named file inside the log directory.
//	@Tags			logs
//	@Accept			plain
//	@Security		BearerAuth
//	@Param			filename	path	string	true	"Target file, e.g. device1.txt"
//	@Success		204
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		413	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/logs/{filename} [post]
func (h *Handler) AppendTo(w http.ResponseWriter, r *http.Request) {
	h.appendTo(w, r, chi.URLParam(r, "filename"))
}

func (h *Handler) appendTo(w http.ResponseWriter, r *http.Request, filename string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIngestBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "log body too large")
			return
		}
		response.BadRequest(w, "could not read request body")
		return
	}

	if err := h.logger.AppendLogTo(r.Context(), filename, string(body)); err != nil {
		if errors.Is(err, ErrInvalidName) {
			response.BadRequest(w, "invalid log file name")
			return
		}
		slog.ErrorContext(r.Context(), "append log failed", "file", filename, "error", err)
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
