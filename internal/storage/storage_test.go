package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("STORAGE_ENDPOINT", "https://example.storage.test")
	t.Setenv("STORAGE_REGION", "")
	t.Setenv("STORAGE_BUCKET", "exports")
	t.Setenv("STORAGE_ACCESS_KEY", "key")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
	t.Setenv("STORAGE_PRESIGN_TTL", "5m")

	cfg := LoadConfig()
	assert.Equal(t, "https://example.storage.test", cfg.Endpoint)
	assert.Equal(t, "auto", cfg.Region)
	assert.Equal(t, 5*time.Minute, cfg.PresignTTL)
	assert.True(t, cfg.Enabled())
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	t.Setenv("STORAGE_PRESIGN_TTL", "soon")
	assert.Equal(t, 15*time.Minute, LoadConfig().PresignTTL)
}

func TestNew_Disabled(t *testing.T) {
	_, err := New(context.Background(), &Config{Bucket: "b"})
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = New(context.Background(), nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestExportKey(t *testing.T) {
	at := time.Unix(1700000000, 0)
	assert.Equal(t, "exports/u1/r1/two-column-1700000000.pdf", ExportKey("u1", "r1", "two-column", ".pdf", at))
	assert.Equal(t, "exports/unknown/r-1/classic-1700000000.jpg", ExportKey("", "r/1", "classic", ".jpg", at))
}

// fakeBucket is a minimal path-style S3 endpoint.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", f.types[r.URL.Path])
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T) (*Store, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	store, err := New(context.Background(), &Config{
		Endpoint:  srv.URL,
		Region:    "auto",
		Bucket:    "resumes",
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return store, bucket
}

func TestStore_PutGet(t *testing.T) {
	store, bucket := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "exports/u/r/classic.txt", "text/plain", []byte("hello")))
	assert.Equal(t, []byte("hello"), bucket.objects["/resumes/exports/u/r/classic.txt"])
	assert.Equal(t, "text/plain", bucket.types["/resumes/exports/u/r/classic.txt"])

	data, err := store.Get(ctx, "exports/u/r/classic.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	var storageErr *Error
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "get", storageErr.Op)
}

func TestStore_PresignGet(t *testing.T) {
	store, _ := newTestStore(t)

	url, err := store.PresignGet(context.Background(), "exports/u/r/classic.pdf", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.Contains(url, "/resumes/exports/u/r/classic.pdf"))
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=60")
}
