package room

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickshare/service/internal/response"
)

// Handler holds HTTP handlers for room endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new room Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createOrLoginRequest struct {
	RoomID string `json:"roomId" example:"team-x"`
	Key    string `json:"key"    example:"s3cr3t"`
}

// CreateOrLogin godoc
//
//	@Summary		Create or enter a room
//	@Description	Creates the room on first use of the identifier, or logs into it when the shared key matches. Returns a bearer token scoped to the room.
//	@Tags			rooms
//	@Accept			json
//	@Produce		json
//	@Param			request	body	createOrLoginRequest	true	"Room identifier and shared key"
//	@Success		200		{object}	map[string]interface{}
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]interface{}
//	@Failure		401		{object}	map[string]interface{}
//	@Router			/rooms [post]
func (h *Handler) CreateOrLogin(w http.ResponseWriter, r *http.Request) {
	var req createOrLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.RoomID == "" || req.Key == "" {
		response.BadRequest(w, "room ID and key are required")
		return
	}

	token, created, err := h.svc.CreateOrLogin(r.Context(), req.RoomID, req.Key)
	if errors.Is(err, ErrKeyMismatch) {
		response.Unauthorized(w, "room already exists but key is not matching")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	if created {
		response.Created(w, response.Fields{"message": "new room created", "token": token})
		return
	}
	response.OK(w, response.Fields{"message": "welcome to room", "token": token})
}

// Delete godoc
//
//	@Summary		Delete a room
//	@Description	Deletes the room, all its content records, and the backing objects.
//	@Tags			rooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			roomId	path	string	true	"Room identifier"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		401	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]interface{}
//	@Router			/rooms/{roomId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	err := h.svc.DeleteRoom(r.Context(), roomID)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "room not found")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, response.Fields{"message": "room and all contents deleted successfully"})
}
