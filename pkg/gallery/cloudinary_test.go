package gallery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryListImages(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1_1/demo/resources/search", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resources":[
			{"public_id":"family/b","secure_url":"https://img/b.jpg","width":800,"height":600,"created_at":"2024-01-02T10:00:00Z"},
			{"public_id":"family/a","secure_url":"https://img/a.jpg","width":640,"height":480,"created_at":"2024-01-01T10:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	p := NewCloudinaryProvider(CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret", BaseURL: srv.URL})
	images, err := p.ListImages(context.Background(), "family/", 100)
	require.NoError(t, err)

	assert.Equal(t, "folder:family/", got.Expression)
	assert.Equal(t, 100, got.MaxResults)
	assert.Equal(t, []map[string]string{{"created_at": "desc"}}, got.SortBy)

	require.Len(t, images, 2)
	assert.Equal(t, "family/b", images[0].PublicID)
	assert.Equal(t, "https://img/b.jpg", images[0].URL)
	assert.Equal(t, 800, images[0].Width)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), images[0].CreatedAt.UTC())
}

func TestCloudinaryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid api_key"}}`))
	}))
	defer srv.Close()

	p := NewCloudinaryProvider(CloudinaryConfig{CloudName: "demo", BaseURL: srv.URL})
	_, err := p.ListImages(context.Background(), "family/", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid api_key")
}

func TestCloudinaryRootFolders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1_1/demo/folders", r.URL.Path)
		_, _, ok := r.BasicAuth()
		assert.True(t, ok)
		_, _ = w.Write([]byte(`{"folders":[{"name":"obit-project","path":"obit-project"}]}`))
	}))
	defer srv.Close()

	p := NewCloudinaryProvider(CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret", BaseURL: srv.URL})
	folders, err := p.RootFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Folder{{Name: "obit-project", Path: "obit-project"}}, folders)
}

func TestCloudinaryUploadedIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/resources/image/upload", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("max_results"))
		_, _ = w.Write([]byte(`{"resources":[{"public_id":"family/a"},{"public_id":"family/b"}]}`))
	}))
	defer srv.Close()

	p := NewCloudinaryProvider(CloudinaryConfig{CloudName: "demo", BaseURL: srv.URL})
	ids, err := p.UploadedIDs(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"family/a", "family/b"}, ids)
}
