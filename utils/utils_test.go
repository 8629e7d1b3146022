package utils

import (
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"oamanager/datastore"
	"oamanager/models"
	"strings"
	"testing"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleStoreError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		want       ErrorResponse
	}{
		{
			name:       "invalid input",
			err:        datastore.Invalid("uid is required"),
			wantStatus: http.StatusBadRequest,
			want:       ErrorResponse{Error: CodeInvalidInput, Message: "uid is required: invalid input"},
		},
		{
			name:       "not found",
			err:        datastore.NotFound("asset %q", "A1"),
			wantStatus: http.StatusNotFound,
			want:       ErrorResponse{Error: CodeNotFound, Resource: "asset", ID: "A1"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/assets/A1", nil)
			HandleStoreError(rec, req, zap.NewNop(), tc.err, "asset", "A1")

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.want, decodeError(t, rec))
		})
	}

	t.Run("internal error hides cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/assets", nil)
		HandleStoreError(rec, req, zap.NewNop(), fmt.Errorf("failed to query: connection refused"), "asset", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, CodeInternalError, body.Error)
		assert.NotEmpty(t, body.TraceID)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusUnauthorized, nil, "missing bearer token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"UNAUTHORIZED"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestParseJSONBody(t *testing.T) {
	var payload models.AssetPayload
	req := httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader(`{"uid":"A1","ownerId":17,"extra":"ignored"}`))
	require.NoError(t, ParseJSONBody(req, &payload))
	assert.Equal(t, "A1", payload.UID)
	assert.Equal(t, "17", payload.OwnerID.String())

	var empty models.InspectionPatch
	req = httptest.NewRequest(http.MethodPatch, "/inspections/1", nil)
	require.NoError(t, ParseJSONBody(req, &empty))
	assert.False(t, empty.Memo.Set)

	req = httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader(`{"uid":`))
	assert.Error(t, ParseJSONBody(req, &payload))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  models.Pagination
	}{
		{query: "", want: models.Pagination{Page: 0, PageSize: models.DefaultPageSize}},
		{query: "?page=2&pageSize=5", want: models.Pagination{Page: 2, PageSize: 5}},
		{query: "?page=-1&pageSize=abc", want: models.Pagination{Page: 0, PageSize: models.DefaultPageSize}},
		{query: "?page=1&pageSize=9223372036854775807", want: models.Pagination{Page: 1, PageSize: models.MaxPageSize}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/assets"+tc.query, nil)
			assert.Equal(t, tc.want, ParsePagination(req))
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/inspections?synced=YES&assetUid=%20A1%20&from=nope", nil)
	require.NotNil(t, QueryBool(req, "synced"))
	assert.True(t, *QueryBool(req, "synced"))
	assert.Nil(t, QueryBool(req, "missing"))
	assert.Equal(t, "A1", QueryString(req, "assetUid"))
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(models.TokenReq{Username: "kim"})
	require.Error(t, err)
	assert.ErrorIs(t, err, datastore.ErrInvalidInput)
	assert.Contains(t, err.Error(), "password is required")

	assert.NoError(t, ValidateStruct(models.TokenReq{Username: "kim", Password: "pw"}))
}

func TestIsPNG(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.True(t, IsPNG(png))
	assert.False(t, IsPNG([]byte("GIF89a")))
	assert.False(t, IsPNG(nil))
}
