package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondInternalError_HidesDetailsInProduction(t *testing.T) {
	defer SetProduction(false)

	rec := httptest.NewRecorder()
	RespondInternalError(rec, "Failed to book appointment", errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to book appointment","message":"pq: connection refused"}`, rec.Body.String())

	SetProduction(true)
	rec = httptest.NewRecorder()
	RespondInternalError(rec, "Failed to book appointment", errors.New("pq: connection refused"))
	assert.JSONEq(t, `{"error":"Failed to book appointment"}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondBadRequest(rec, "Date parameter is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Date parameter is required"}`, rec.Body.String())
}

func TestRouteNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	RouteNotFound(rec, httptest.NewRequest(http.MethodPut, "/api/v1/unknown?x=1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found","path":"/api/v1/unknown?x=1","method":"PUT"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Status string `json:"status"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"completed"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "completed", v.Status)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
	assert.Error(t, DecodeJSON(r, &v))
}
