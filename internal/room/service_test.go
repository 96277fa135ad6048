package room

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickshare/service/internal/metrics"
	"github.com/quickshare/service/internal/storage"
)

const testSecret = "test-secret"

// pgconnUniqueViolation simulates a unique_violation from a concurrent create.
var pgconnUniqueViolation = pgconn.PgError{Code: "23505"}

// fakeStore records deleted keys and can be told to fail specific ones.
type fakeStore struct {
	mu       sync.Mutex
	deleted  []string
	failKeys map[string]bool
}

func (f *fakeStore) PresignUpload(ctx context.Context, key, contentType string, maxBytes int64) (*storage.UploadGrant, error) {
	return &storage.UploadGrant{URL: "http://storage.local", Fields: map[string]string{}, Key: key}, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKeys[key] {
		return errors.New("storage unavailable")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

// fakePurger is an in-memory ContentPurger.
type fakePurger struct {
	fileKeys []string
	purged   []string
}

func (f *fakePurger) FileKeysByRoomRef(ctx context.Context, roomRef string) ([]string, error) {
	return f.fileKeys, nil
}

func (f *fakePurger) DeleteByRoomRef(ctx context.Context, roomRef string) error {
	f.purged = append(f.purged, roomRef)
	return nil
}

func newTestService(t *testing.T, purger ContentPurger, store storage.ObjectStore) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	if store == nil {
		store = &fakeStore{}
	}
	if purger == nil {
		purger = &fakePurger{}
	}
	m := metrics.New(prometheus.NewRegistry())
	svc := NewService(NewRepository(mock), purger, store, testSecret, zerolog.Nop(), m)
	return svc, mock
}

func mustHash(t *testing.T, key string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func roomRows(id, roomID, keyHash string, createdAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "room_id", "key_hash", "created_at"}).
		AddRow(id, roomID, keyHash, createdAt)
}

func tokenRoomID(t *testing.T, token string) string {
	t.Helper()
	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims := parsed.Claims.(jwt.MapClaims)
	roomID, _ := claims["roomId"].(string)
	return roomID
}

func TestCreateOrLoginCreatesRoomOnFirstUse(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)

	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("team-x").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO rooms`).
		WithArgs("team-x", pgxmock.AnyArg()).
		WillReturnRows(roomRows("11111111-1111-1111-1111-111111111111", "team-x", mustHash(t, "s3cr3t"), time.Now()))

	token, created, err := svc.CreateOrLogin(context.Background(), "team-x", "s3cr3t")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "team-x", tokenRoomID(t, token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrLoginExistingRoomSameKey(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)

	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("team-x").
		WillReturnRows(roomRows("11111111-1111-1111-1111-111111111111", "team-x", mustHash(t, "s3cr3t"), time.Now()))

	token, created, err := svc.CreateOrLogin(context.Background(), "team-x", "s3cr3t")
	require.NoError(t, err)
	assert.False(t, created, "no duplicate room on replay with the same key")
	assert.Equal(t, "team-x", tokenRoomID(t, token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrLoginExistingRoomWrongKey(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)

	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("team-x").
		WillReturnRows(roomRows("11111111-1111-1111-1111-111111111111", "team-x", mustHash(t, "s3cr3t"), time.Now()))

	_, _, err := svc.CreateOrLogin(context.Background(), "team-x", "wrong")
	assert.ErrorIs(t, err, ErrKeyMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrLoginRetriesLoginAfterLostCreateRace(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)
	hash := mustHash(t, "s3cr3t")

	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("team-x").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO rooms`).
		WithArgs("team-x", pgxmock.AnyArg()).
		WillReturnError(&pgconnUniqueViolation)
	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("team-x").
		WillReturnRows(roomRows("11111111-1111-1111-1111-111111111111", "team-x", hash, time.Now()))

	token, created, err := svc.CreateOrLogin(context.Background(), "team-x", "s3cr3t")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "team-x", tokenRoomID(t, token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomCascadesDBFirstStorageSecond(t *testing.T) {
	store := &fakeStore{}
	purger := &fakePurger{fileKeys: []string{"uploads/1-a.txt", "uploads/2-b.txt"}}
	svc, mock := newTestService(t, purger, store)

	roomRef := "11111111-1111-1111-1111-111111111111"
	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("team-x").
		WillReturnRows(roomRows(roomRef, "team-x", mustHash(t, "s3cr3t"), time.Now()))
	mock.ExpectExec(`DELETE FROM rooms`).
		WithArgs(roomRef).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, svc.DeleteRoom(context.Background(), "team-x"))

	assert.Equal(t, []string{roomRef}, purger.purged)
	assert.ElementsMatch(t, []string{"uploads/1-a.txt", "uploads/2-b.txt"}, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomStorageFailureDoesNotFailOperation(t *testing.T) {
	store := &fakeStore{failKeys: map[string]bool{"uploads/1-a.txt": true}}
	purger := &fakePurger{fileKeys: []string{"uploads/1-a.txt", "uploads/2-b.txt"}}
	svc, mock := newTestService(t, purger, store)

	roomRef := "11111111-1111-1111-1111-111111111111"
	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("team-x").
		WillReturnRows(roomRows(roomRef, "team-x", mustHash(t, "s3cr3t"), time.Now()))
	mock.ExpectExec(`DELETE FROM rooms`).
		WithArgs(roomRef).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, svc.DeleteRoom(context.Background(), "team-x"),
		"a storage-delete failure is logged, never surfaced")
	assert.Equal(t, []string{"uploads/2-b.txt"}, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomNotFound(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)

	mock.ExpectQuery(`SELECT id, room_id, key_hash, created_at`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	err := svc.DeleteRoom(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
