// Package content manages per-room content items: inline text snippets and
// file-metadata records pointing at objects in storage.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/quickshare/service/internal/db"
)

// Kind discriminates the two content shapes.
const (
	KindText = "text"
	KindFile = "file"
)

// Content is a single item owned by exactly one room. Exactly one of the
// text payload or the file-metadata fields is populated, selected by Kind.
type Content struct {
	ID        string    `json:"id"`
	RoomRef   string    `json:"-"`
	Kind      string    `json:"type"`
	Text      *string   `json:"text,omitempty"`
	FileName  *string   `json:"fileName,omitempty"`
	FileKey   *string   `json:"filePath,omitempty"`
	FileType  *string   `json:"fileType,omitempty"`
	FileSize  *int64    `json:"fileSize,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a content item does not exist.
var ErrNotFound = errors.New("content not found")

// Repository handles all content database operations.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db db.Querier) *Repository {
	return &Repository{db: db}
}

const contentColumns = `id, room_ref, kind, body, file_name, file_key, file_type, file_size, created_at`

func scanContent(row pgx.Row) (*Content, error) {
	c := &Content{}
	err := row.Scan(&c.ID, &c.RoomRef, &c.Kind, &c.Text, &c.FileName, &c.FileKey, &c.FileType, &c.FileSize, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Insert stores a new content item and returns the persisted record.
func (r *Repository) Insert(ctx context.Context, c *Content) (*Content, error) {
	created, err := scanContent(r.db.QueryRow(ctx,
		`INSERT INTO contents (room_ref, kind, body, file_name, file_key, file_type, file_size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+contentColumns,
		c.RoomRef, c.Kind, c.Text, c.FileName, c.FileKey, c.FileType, c.FileSize,
	))
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}
	return created, nil
}

// GetByID fetches a content item by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*Content, error) {
	c, err := scanContent(r.db.QueryRow(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content by id: %w", err)
	}
	return c, nil
}

// ListByRoomRef returns all content owned by the room, newest first.
func (r *Repository) ListByRoomRef(ctx context.Context, roomRef string) ([]Content, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+contentColumns+` FROM contents
		 WHERE room_ref = $1
		 ORDER BY created_at DESC`,
		roomRef,
	)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	contents := []Content{}
	for rows.Next() {
		c := Content{}
		if err := rows.Scan(&c.ID, &c.RoomRef, &c.Kind, &c.Text, &c.FileName, &c.FileKey, &c.FileType, &c.FileSize, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contents: %w", err)
	}
	return contents, nil
}

// FileKeysByRoomRef returns the storage keys of all file-kind content owned
// by the room. Used by the cascade delete to clean up backing objects.
func (r *Repository) FileKeysByRoomRef(ctx context.Context, roomRef string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT file_key FROM contents
		 WHERE room_ref = $1 AND kind = 'file' AND file_key IS NOT NULL`,
		roomRef,
	)
	if err != nil {
		return nil, fmt.Errorf("list file keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan file key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file keys: %w", err)
	}
	return keys, nil
}

// DeleteByID removes a single content row.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// DeleteByRoomRef removes all content rows owned by the room.
func (r *Repository) DeleteByRoomRef(ctx context.Context, roomRef string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM contents WHERE room_ref = $1`, roomRef)
	if err != nil {
		return fmt.Errorf("delete room contents: %w", err)
	}
	return nil
}
