package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessBodyMergesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, Fields{"message": "new room created", "token": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "new room created", body["message"])
	assert.Equal(t, "abc", body["token"])
}

func TestErrorBodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	Forbidden(rec, "not authorized")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "not authorized", body["message"])
}
