package ipfs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *PinataClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewPinataClient("key", "secret", zap.NewNop())
	c.BaseURL = srv.URL
	return c
}

func TestPinFile_SendsCredentialsAndMultipart(t *testing.T) {
	var gotKey, gotSecret, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("pinata_api_key")
		gotSecret = r.Header.Get("pinata_secret_api_key")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"IpfsHash":"QmTest","PinSize":42,"Timestamp":"2025-06-01T00:00:00Z"}`))
	})

	result, err := c.PinFile(context.Background(), "photo.jpg", strings.NewReader("fake-bytes"), map[string]string{"hotelId": "h1"})
	require.NoError(t, err)

	assert.Equal(t, "QmTest", result.IpfsHash)
	assert.Equal(t, int64(42), result.PinSize)
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, "secret", gotSecret)
	assert.Contains(t, gotContentType, "multipart/form-data")
}

func TestPinFile_UpstreamErrorIncludesStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	_, err := c.PinFile(context.Background(), "photo.jpg", strings.NewReader("x"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestGetMetadata_NotPinnedReturnsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rows":[]}`))
	})

	pinned, err := c.GetMetadata(context.Background(), "QmMissing")
	require.NoError(t, err)
	assert.Nil(t, pinned)
}

func TestListFiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "status=pinned")
		w.Write([]byte(`{"rows":[{"ipfs_pin_hash":"QmA","size":10},{"ipfs_pin_hash":"QmB","size":20}]}`))
	})

	files, err := c.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "QmA", files[0].IpfsHash)
}

func TestUnpin(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`OK`))
	})

	require.NoError(t, c.Unpin(context.Background(), "QmA"))
	assert.Equal(t, "/pinning/unpin/QmA", gotPath)
}
