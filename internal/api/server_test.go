package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/filmstash/filmstash/internal/catalog"
	"github.com/filmstash/filmstash/internal/config"
	"github.com/filmstash/filmstash/internal/naming"
	"github.com/filmstash/filmstash/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, token string) *httptest.Server {
	t.Helper()

	blob, err := catalog.NewFileStore(filepath.Join(t.TempDir(), "catalog.json"))
	require.NoError(t, err)
	store := catalog.NewStore(blob)
	t.Cleanup(func() { store.Close() })

	extractor := naming.NewExtractor(naming.NewRulesGuesser(), nil)
	res := resolver.New(store, extractor, resolver.DefaultThresholds(), nil, nil)

	cfg := config.DefaultConfig()
	cfg.API.Token = token

	srv := httptest.NewServer(NewServer(res, cfg, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_UploadAndSearch(t *testing.T) {
	srv := newTestServer(t, "")

	resp := postJSON(t, srv.URL+"/api/v1/files", "", map[string]string{
		"file_id":   "F1",
		"file_name": "Leo.2023.Tamil.1080p.HDRip.mkv",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var up uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	assert.Equal(t, "leo 2023", up.Title)

	resp2, err := http.Get(srv.URL + "/api/v1/search?q=leo+2023")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var sr searchResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&sr))
	require.Len(t, sr.Files, 1)
	assert.Equal(t, "F1", sr.Files[0].FileID)
}

func TestServer_UploadWithTitleOverride(t *testing.T) {
	srv := newTestServer(t, "")

	resp := postJSON(t, srv.URL+"/api/v1/files", "", map[string]string{
		"file_id":   "F1",
		"file_name": "raw-upload.mkv",
		"title":     "Custom Title",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var up uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	assert.Equal(t, "custom title", up.Title)
}

func TestServer_SearchNotFound(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Get(srv.URL + "/api/v1/search?q=nothing+here")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_SearchMissingQuery(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Get(srv.URL + "/api/v1/search")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Delete(t *testing.T) {
	srv := newTestServer(t, "")

	resp := postJSON(t, srv.URL+"/api/v1/files", "", map[string]string{
		"file_id":   "F1",
		"file_name": "Leo.2023.1080p.mkv",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/delete", "", map[string]string{"query": "leo 2023"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result resolver.DeleteResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Deleted)
}

func TestServer_AuthToken(t *testing.T) {
	srv := newTestServer(t, "secret")

	body := map[string]string{"file_id": "F1", "file_name": "Leo.2023.mkv"}

	resp := postJSON(t, srv.URL+"/api/v1/files", "", body)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/files", "wrong", body)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/files", "secret", body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Read endpoints stay open.
	get, err := http.Get(srv.URL + "/api/v1/search?q=leo+2023")
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusOK, get.StatusCode)
}
