package server

import (
	"context"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"oamanager/datastore/memory"
	"oamanager/models"
	blobprovider "oamanager/providers/blobProvider"
	configprovider "oamanager/providers/configProvider"
	"oamanager/providers/loggerProvider"
	"oamanager/serviceprovider/auth"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	cfg := configprovider.NewConfigProvider()
	require.NoError(t, cfg.LoadEnv())

	logProvider := loggerProvider.NewLogProvider("test")
	blobs := blobprovider.NewMemory()
	store := memory.New("", blobs, nil)
	require.NoError(t, store.Initialize(context.Background()))

	srv := &Server{Config: cfg, Logger: logProvider, Store: store}
	tokens := auth.NewTokenService("test-secret", time.Hour, nil, nil)
	srv.wireHandlers(blobs, tokens, logProvider.GetLogger())
	return srv.InjectRoutes()
}

func serve(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestServer(t)

	for _, target := range []string{"/assets", "/inspections", "/verifications", "/references/users", "/dashboard/stats"} {
		rec := serve(h, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		rec = serve(h, http.MethodGet, target, "", "forged")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestTokenFlowThroughRouter(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, http.MethodPost, "/auth/token", `{"username":"kim","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var issued models.TokenRes
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &issued))
	assert.Equal(t, 3600, issued.ExpiresIn)

	rec = serve(h, http.MethodPost, "/assets", `{"uid":"A00001","name":"노트북","metadata":{"organization":"자동화팀"}}`, issued.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(h, http.MethodGet, "/assets?q=a0000", "", issued.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var page models.Page[models.Asset]
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "A00001", page.Items[0].UID)

	rec = serve(h, http.MethodGet, "/dashboard/stats", "", issued.AccessToken)
	assert.JSONEq(t, `{"totalAssets":1,"inspectedAssets":0,"inspectionRate":0,"unverifiedCount":1,"disposedCount":0}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/references/assets?q=A0", "", issued.AccessToken)
	assert.JSONEq(t, `{"items":[{"uid":"A00001","name":"노트북","assetType":""}]}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+issued.AccessToken+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshed models.TokenRes
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &refreshed))

	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, "/assets", "", issued.AccessToken).Code,
		"refreshed token is revoked")
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/assets", "", refreshed.AccessToken).Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/assets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
