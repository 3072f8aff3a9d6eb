package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorWritesKindStatus(t *testing.T) {
	rnd := New(false)

	rec := httptest.NewRecorder()
	rnd.Error(rec, fmt.Errorf("wrapped: %w", apperror.Conflict("You have already reviewed this product")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "You have already reviewed this product", body["error"])
	assert.EqualValues(t, http.StatusConflict, body["code"])
	assert.NotContains(t, body, "fields")
}

func TestErrorIncludesFields(t *testing.T) {
	rnd := New(false)

	rec := httptest.NewRecorder()
	rnd.Error(rec, apperror.InvalidFields("Invalid request data", map[string]string{"email": "email is required"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, map[string]interface{}{"email": "email is required"}, body["fields"])
}

func TestErrorHidesInternalMessagesOutsideDebug(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	rec := httptest.NewRecorder()
	New(false).Error(rec, cause)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeBody(t, rec)["error"])

	rec = httptest.NewRecorder()
	New(true).Error(rec, cause)
	assert.Equal(t, "dial tcp: connection refused", decodeBody(t, rec)["error"])
}
