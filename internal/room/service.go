package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/quickshare/service/internal/metrics"
	"github.com/quickshare/service/internal/storage"
)

// tokenTTL is the lifetime of an issued room credential.
const tokenTTL = 7 * 24 * time.Hour

// bcryptCost matches the work factor the room keys were originally hashed with.
const bcryptCost = 10

// ErrKeyMismatch is returned when the room exists but the supplied key does
// not match its stored hash. Distinct from ErrNotFound on purpose.
var ErrKeyMismatch = errors.New("room key mismatch")

// ContentPurger is the slice of the content layer the cascade delete needs.
// Implemented by content.Repository.
type ContentPurger interface {
	// FileKeysByRoomRef returns the storage keys of all file-kind contents
	// owned by the room.
	FileKeysByRoomRef(ctx context.Context, roomRef string) ([]string, error)
	// DeleteByRoomRef removes all content rows owned by the room.
	DeleteByRoomRef(ctx context.Context, roomRef string) error
}

// Service contains the business logic for room access and lifecycle.
type Service struct {
	repo      *Repository
	contents  ContentPurger
	store     storage.ObjectStore
	jwtSecret string
	log       zerolog.Logger
	metrics   *metrics.Metrics
}

// NewService creates a new room Service.
func NewService(repo *Repository, contents ContentPurger, store storage.ObjectStore, jwtSecret string, log zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		contents:  contents,
		store:     store,
		jwtSecret: jwtSecret,
		log:       log,
		metrics:   m,
	}
}

// CreateOrLogin authenticates against an existing room or creates it on
// first use. Returns the bearer token and whether a new room was created.
// There is no key recovery: the key is only ever comparable, never readable.
func (s *Service) CreateOrLogin(ctx context.Context, roomID, key string) (string, bool, error) {
	rm, err := s.repo.GetByRoomID(ctx, roomID)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(rm.KeyHash), []byte(key)) != nil {
			return "", false, ErrKeyMismatch
		}
		token, err := s.issueToken(rm.RoomID)
		if err != nil {
			return "", false, fmt.Errorf("issue token: %w", err)
		}
		return token, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", false, fmt.Errorf("look up room: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcryptCost)
	if err != nil {
		return "", false, fmt.Errorf("hash key: %w", err)
	}

	rm, err = s.repo.Create(ctx, roomID, string(hash))
	if errors.Is(err, ErrAlreadyExists) {
		// Lost a create race; fall back to a plain login attempt.
		token, _, err := s.loginExisting(ctx, roomID, key)
		return token, false, err
	}
	if err != nil {
		return "", false, fmt.Errorf("create room: %w", err)
	}

	token, err := s.issueToken(rm.RoomID)
	if err != nil {
		return "", false, fmt.Errorf("issue token: %w", err)
	}
	return token, true, nil
}

func (s *Service) loginExisting(ctx context.Context, roomID, key string) (string, bool, error) {
	rm, err := s.repo.GetByRoomID(ctx, roomID)
	if err != nil {
		return "", false, fmt.Errorf("look up room: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rm.KeyHash), []byte(key)) != nil {
		return "", false, ErrKeyMismatch
	}
	token, err := s.issueToken(rm.RoomID)
	if err != nil {
		return "", false, fmt.Errorf("issue token: %w", err)
	}
	return token, false, nil
}

// DeleteRoom cascades: content rows first, then the room row, then the
// backing objects. DB records go first so no dangling references survive;
// a stale object with no DB record is a harmless orphan. Object deletions
// run in parallel and are best-effort: failures are logged, counted, and
// never surfaced to the caller.
func (s *Service) DeleteRoom(ctx context.Context, roomID string) error {
	rm, err := s.repo.GetByRoomID(ctx, roomID)
	if err != nil {
		return err
	}

	keys, err := s.contents.FileKeysByRoomRef(ctx, rm.ID)
	if err != nil {
		return fmt.Errorf("collect file keys: %w", err)
	}

	if err := s.contents.DeleteByRoomRef(ctx, rm.ID); err != nil {
		return fmt.Errorf("delete room contents: %w", err)
	}
	if err := s.repo.Delete(ctx, rm.ID); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	g := &errgroup.Group{}
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := s.store.Delete(ctx, key); err != nil {
				s.metrics.StorageDeleteFailures.Inc()
				s.log.Warn().Err(err).Str("roomId", roomID).Str("key", key).
					Msg("failed to delete stored object")
			}
			return nil
		})
	}
	_ = g.Wait()

	return nil
}

// ExpiredRoomIDs returns identifiers of rooms created at or before cutoff.
func (s *Service) ExpiredRoomIDs(ctx context.Context, cutoff time.Time) ([]string, error) {
	return s.repo.FindExpiredRoomIDs(ctx, cutoff)
}

// issueToken creates a signed JWT scoped to the given room identifier.
func (s *Service) issueToken(roomID string) (string, error) {
	claims := jwt.MapClaims{
		"roomId": roomID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
