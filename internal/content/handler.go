package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickshare/service/internal/middleware"
	"github.com/quickshare/service/internal/response"
	"github.com/quickshare/service/internal/room"
)

// Handler holds HTTP handlers for content endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new content Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createTextRequest struct {
	Text string `json:"text" example:"hello"`
}

type createFileRequest struct {
	FileName string `json:"fileName" example:"report.pdf"`
	FilePath string `json:"filePath" example:"uploads/1756710000000-report.pdf"`
	FileType string `json:"fileType,omitempty" example:"application/pdf"`
	FileSize int64  `json:"fileSize,omitempty" example:"102400"`
}

// CreateText godoc
//
//	@Summary		Add a text snippet
//	@Description	Stores a text snippet in the caller's room.
//	@Tags			contents
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body	createTextRequest	true	"Text payload"
//	@Success		201	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]interface{}
//	@Router			/contents/text [post]
func (h *Handler) CreateText(w http.ResponseWriter, r *http.Request) {
	roomID, ok := middleware.RoomID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req createTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.svc.CreateText(r.Context(), roomID, req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, response.Fields{"message": "text uploaded successfully", "content": c})
}

// CreateFile godoc
//
//	@Summary		Record an uploaded file
//	@Description	Stores file metadata for an object already uploaded to storage via an upload grant.
//	@Tags			contents
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body	createFileRequest	true	"File metadata"
//	@Success		201	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]interface{}
//	@Failure		401	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]interface{}
//	@Router			/contents/file [post]
func (h *Handler) CreateFile(w http.ResponseWriter, r *http.Request) {
	roomID, ok := middleware.RoomID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.svc.CreateFile(r.Context(), roomID, req.FileName, req.FilePath, req.FileType, req.FileSize)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, response.Fields{"message": "file uploaded successfully", "content": c})
}

// List godoc
//
//	@Summary		List room contents
//	@Description	Returns all content in the caller's room, newest first.
//	@Tags			contents
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]interface{}
//	@Router			/contents [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	roomID, ok := middleware.RoomID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	contents, err := h.svc.List(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, response.Fields{"contents": contents})
}

// Delete godoc
//
//	@Summary		Delete a content item
//	@Description	Deletes a content item by id. The item must belong to the caller's room.
//	@Tags			contents
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Content id"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		403	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]interface{}
//	@Router			/contents/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, ok := middleware.RoomID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	err := h.svc.Delete(r.Context(), roomID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, response.Fields{"message": "content deleted successfully"})
}

// writeError maps service errors onto the HTTP error taxonomy.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyText), errors.Is(err, ErrMissingFileFields):
		response.BadRequest(w, err.Error())
	case errors.Is(err, room.ErrNotFound):
		response.NotFound(w, "room not found")
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "content not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, "not authorized")
	default:
		response.InternalError(w)
	}
}
