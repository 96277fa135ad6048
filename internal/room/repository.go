// Package room implements room access (create-or-login) and the room
// lifecycle, including the cascade delete used by the expiry sweeper.
package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quickshare/service/internal/db"
)

// Room is a named, secret-gated namespace for content. The shared key is
// held only as a bcrypt hash and is never serialized or logged.
type Room struct {
	ID        string    `json:"-"`
	RoomID    string    `json:"roomId"`
	KeyHash   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a room does not exist.
var ErrNotFound = errors.New("room not found")

// ErrAlreadyExists is returned when a room identifier is already taken.
var ErrAlreadyExists = errors.New("room already exists")

// Repository handles all room database operations.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db db.Querier) *Repository {
	return &Repository{db: db}
}

// Create inserts a new room and returns the created record.
func (r *Repository) Create(ctx context.Context, roomID, keyHash string) (*Room, error) {
	rm := &Room{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO rooms (room_id, key_hash)
		 VALUES ($1, $2)
		 RETURNING id, room_id, key_hash, created_at`,
		roomID, keyHash,
	).Scan(&rm.ID, &rm.RoomID, &rm.KeyHash, &rm.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return rm, nil
}

// GetByRoomID fetches a room by its caller-supplied identifier.
func (r *Repository) GetByRoomID(ctx context.Context, roomID string) (*Room, error) {
	rm := &Room{}
	err := r.db.QueryRow(ctx,
		`SELECT id, room_id, key_hash, created_at
		 FROM rooms WHERE room_id = $1`,
		roomID,
	).Scan(&rm.ID, &rm.RoomID, &rm.KeyHash, &rm.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room by room_id: %w", err)
	}
	return rm, nil
}

// ResolveRoomRef maps a room identifier to its internal id. Used by the
// content layer to scope every operation to the caller's room.
func (r *Repository) ResolveRoomRef(ctx context.Context, roomID string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM rooms WHERE room_id = $1`,
		roomID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve room ref: %w", err)
	}
	return id, nil
}

// Delete removes the room row by internal id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

// FindExpiredRoomIDs returns the identifiers of rooms created at or before
// cutoff. Only room_id is projected: a sweep may match many rooms.
func (r *Repository) FindExpiredRoomIDs(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT room_id FROM rooms WHERE created_at <= $1`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("find expired rooms: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan expired room: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired rooms: %w", err)
	}
	return ids, nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
