package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quickshare/service/internal/metrics"
	"github.com/quickshare/service/internal/room"
	"github.com/quickshare/service/internal/storage"
)

// ErrEmptyText is returned when a text item has no usable payload.
var ErrEmptyText = errors.New("text is required")

// ErrMissingFileFields is returned when a file item lacks a name or storage key.
var ErrMissingFileFields = errors.New("file name and path are required")

// ErrForbidden is returned when a content item belongs to a different room
// than the caller's. Cross-room deletion is disallowed even with a valid
// credential for another room.
var ErrForbidden = errors.New("content belongs to another room")

// Service contains the business logic for room-scoped content.
type Service struct {
	repo    *Repository
	rooms   *room.Repository
	store   storage.ObjectStore
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewService creates a new content Service.
func NewService(repo *Repository, rooms *room.Repository, store storage.ObjectStore, log zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{repo: repo, rooms: rooms, store: store, log: log, metrics: m}
}

// CreateText stores a text snippet in the caller's room.
func (s *Service) CreateText(ctx context.Context, roomID, text string) (*Content, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	roomRef, err := s.rooms.ResolveRoomRef(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return s.repo.Insert(ctx, &Content{
		RoomRef: roomRef,
		Kind:    KindText,
		Text:    &text,
	})
}

// CreateFile records file metadata in the caller's room. The bytes were
// already uploaded directly to storage under fileKey via an upload grant.
// MIME type and size are declared metadata, not validated against the object.
func (s *Service) CreateFile(ctx context.Context, roomID, fileName, fileKey, fileType string, fileSize int64) (*Content, error) {
	if fileName == "" || fileKey == "" {
		return nil, ErrMissingFileFields
	}

	roomRef, err := s.rooms.ResolveRoomRef(ctx, roomID)
	if err != nil {
		return nil, err
	}

	c := &Content{
		RoomRef:  roomRef,
		Kind:     KindFile,
		FileName: &fileName,
		FileKey:  &fileKey,
	}
	if fileType != "" {
		c.FileType = &fileType
	}
	if fileSize > 0 {
		c.FileSize = &fileSize
	}
	return s.repo.Insert(ctx, c)
}

// List returns the room's content, newest first. An empty slice is a valid
// result for a fresh room.
func (s *Service) List(ctx context.Context, roomID string) ([]Content, error) {
	roomRef, err := s.rooms.ResolveRoomRef(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByRoomRef(ctx, roomRef)
}

// Delete removes a content item by id after verifying it belongs to the
// caller's room. For file items the backing object is deleted first,
// best-effort: a storage failure is logged and counted but never blocks
// the metadata delete.
func (s *Service) Delete(ctx context.Context, roomID, contentID string) error {
	roomRef, err := s.rooms.ResolveRoomRef(ctx, roomID)
	if err != nil {
		return err
	}

	c, err := s.repo.GetByID(ctx, contentID)
	if err != nil {
		return err
	}
	if c.RoomRef != roomRef {
		return ErrForbidden
	}

	if c.Kind == KindFile && c.FileKey != nil {
		if err := s.store.Delete(ctx, *c.FileKey); err != nil {
			s.metrics.StorageDeleteFailures.Inc()
			s.log.Warn().Err(err).Str("roomId", roomID).Str("key", *c.FileKey).
				Msg("failed to delete stored object")
		}
	}

	if err := s.repo.DeleteByID(ctx, contentID); err != nil {
		return fmt.Errorf("delete content row: %w", err)
	}
	return nil
}
