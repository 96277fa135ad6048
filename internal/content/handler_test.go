package content

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickshare/service/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, roomID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"roomId": roomID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRoom(testSecret))
		r.Route("/contents", func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/text", h.CreateText)
			r.Delete("/{id}", h.Delete)
		})
	})
	return r
}

func TestListRequiresToken(t *testing.T) {
	svc, _ := newTestService(t, nil)
	r := newTestRouter(NewHandler(svc))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contents", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListEmptyRoomReturnsEmptyArray(t *testing.T) {
	svc, mock := newTestService(t, nil)
	r := newTestRouter(NewHandler(svc))

	expectResolveRoom(mock, "team-x", roomA)
	mock.ExpectQuery(`SELECT id, room_ref, kind`).
		WithArgs(roomA).
		WillReturnRows(pgxmockContentColumns())

	req := httptest.NewRequest(http.MethodGet, "/contents", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "team-x"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"contents":[]`)
}

func TestCreateTextHandlerRejectsEmptyText(t *testing.T) {
	svc, _ := newTestService(t, nil)
	r := newTestRouter(NewHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/contents/text", strings.NewReader(`{"text":""}`))
	req.Header.Set("Authorization", "Bearer "+signToken(t, "team-x"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTextHandlerStoresSnippet(t *testing.T) {
	svc, mock := newTestService(t, nil)
	r := newTestRouter(NewHandler(svc))

	expectResolveRoom(mock, "team-x", roomA)
	mock.ExpectQuery(`INSERT INTO contents`).
		WithArgs(roomA, KindText, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(contentRow("c1", roomA, KindText, strptr("hello"), nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/contents/text", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Authorization", "Bearer "+signToken(t, "team-x"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"text"`)
	assert.Contains(t, rec.Body.String(), `"text":"hello"`)
}

func TestDeleteHandlerCrossRoomForbidden(t *testing.T) {
	svc, mock := newTestService(t, nil)
	r := newTestRouter(NewHandler(svc))

	// Content c1 is owned by room A; the token is scoped to room B.
	expectResolveRoom(mock, "team-b", roomB)
	mock.ExpectQuery(`SELECT id, room_ref, kind`).
		WithArgs("c1").
		WillReturnRows(contentRow("c1", roomA, KindText, strptr("hello"), nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodDelete, "/contents/c1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "team-b"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func pgxmockContentColumns() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "room_ref", "kind", "body", "file_name", "file_key", "file_type", "file_size", "created_at"})
}
