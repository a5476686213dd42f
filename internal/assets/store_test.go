package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/scottsawyer/commerce-printful/internal/config"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewStore(config.AssetsConfig{Directory: dir, Scheme: "public"}, zaptest.NewLogger(t))
	return store, dir
}

func TestFetchAndStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	store, dir := newTestStore(t)

	path, err := store.FetchAndStore(context.Background(), server.URL+"/front.png", "field_image", "front.png")
	require.NoError(t, err)

	assert.Equal(t, "public://field_image/front.png", path)
	data, err := os.ReadFile(filepath.Join(dir, "field_image", "front.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestFetchAndStoreUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store, dir := newTestStore(t)

	_, err := store.FetchAndStore(context.Background(), server.URL+"/gone.png", "field_image", "gone.png")

	var assetErr *pkgerrors.ErrAsset
	require.ErrorAs(t, err, &assetErr)
	_, statErr := os.Stat(filepath.Join(dir, "field_image", "gone.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchAndStoreUnreachableHost(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.FetchAndStore(context.Background(), "http://127.0.0.1:1/x.png", "field_image", "x.png")

	var assetErr *pkgerrors.ErrAsset
	require.ErrorAs(t, err, &assetErr)
}
