package assetservice

import (
	"context"
	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"oamanager/datastore/memory"
	"oamanager/models"
	blobprovider "oamanager/providers/blobProvider"
	"strings"
	"testing"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.New("", blobprovider.NewMemory(), nil)
	require.NoError(t, store.Initialize(context.Background()))

	h := NewAssetHandler(NewAssetService(store, nil), nil)
	r := chi.NewRouter()
	r.Get("/assets", h.ListAssets)
	r.Post("/assets", h.UpsertAsset)
	r.Get("/assets/{uid}", h.GetAsset)
	r.Delete("/assets/{uid}", h.DeleteAsset)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUpsertAssetHandler(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name               string
		body               string
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:               "creates new asset",
			body:               `{"uid":"A00042","assetType":"노트북","metadata":{"network":"사내망"}}`,
			expectedStatusCode: http.StatusCreated,
			expectedBody:       `{"asset":{"uid":"A00042"},"created":true}`,
		},
		{
			name:               "patches existing asset",
			body:               `{"uid":"A00042","vendor":"Dell"}`,
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"asset":{"uid":"A00042"},"created":false}`,
		},
		{
			name:               "missing uid",
			body:               `{"name":"노트북"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "malformed body",
			body:               `{"uid":`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/assets", tc.body)
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			}
		})
	}

	rec := do(t, router, http.MethodGet, "/assets/A00042", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail models.AssetDetail
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "노트북", detail.AssetType)
	assert.Equal(t, "Dell", detail.Vendor)
	network, _ := detail.Metadata.Get("network")
	assert.Equal(t, "사내망", network)
	assert.NotNil(t, detail.History)
}

func TestListAssetsHandler(t *testing.T) {
	router := newTestRouter(t)
	for _, body := range []string{
		`{"uid":"A1","status":"사용"}`,
		`{"uid":"A2","status":"이동"}`,
		`{"uid":"B1","status":"사용"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/assets", body).Code)
	}

	rec := do(t, router, http.MethodGet, "/assets?q=a&status=%EC%82%AC%EC%9A%A9&pageSize=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page models.Page[models.Asset]
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 10, page.PageSize)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "A1", page.Items[0].UID)
}

func TestDeleteAssetHandler(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/assets", `{"uid":"A1"}`).Code)

	rec := do(t, router, http.MethodDelete, "/assets/A1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"A1","status":"폐기"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/assets/A1", "")
	assert.Equal(t, http.StatusOK, rec.Code, "disposed assets stay readable")

	rec = do(t, router, http.MethodDelete, "/assets/NOPE", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"NOT_FOUND","resource":"asset","id":"NOPE"}`, rec.Body.String())
}

func TestGetAssetNotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/assets/A404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"NOT_FOUND","resource":"asset","id":"A404"}`, rec.Body.String())
}
