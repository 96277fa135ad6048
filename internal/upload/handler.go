package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quickshare/service/internal/response"
)

// Handler holds the HTTP handler for upload-grant issuing.
type Handler struct {
	svc *Service
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type uploadURLRequest struct {
	FileName string `json:"fileName" example:"report.pdf"`
	FileType string `json:"fileType" example:"application/pdf"`
	FileSize int64  `json:"fileSize" example:"102400"`
}

// UploadURL godoc
//
//	@Summary		Issue an upload grant
//	@Description	Returns a presigned POST the client uses to upload one object directly to storage, plus the storage key to record as content metadata afterwards. The grant expires after 15 minutes.
//	@Tags			s3
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body	uploadURLRequest	true	"Declared file metadata"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]interface{}
//	@Router			/s3/upload-url [post]
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	grant, err := h.svc.IssueGrant(r.Context(), req.FileName, req.FileType, req.FileSize)
	if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrFileTooLarge) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, response.Fields{"presignedPost": grant, "key": grant.Key})
}
