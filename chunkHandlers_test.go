package main

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maxsupermanhd/VoxelStream/chunkStorage"
	"github.com/maxsupermanhd/VoxelStream/chunkStorage/filesystemChunkStorage"
	previewcache "github.com/maxsupermanhd/VoxelStream/previewCache"
	"github.com/maxsupermanhd/VoxelStream/render/renderers"
	"github.com/maxsupermanhd/lac"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg = lac.NewConf()
	cfg.Set(t.TempDir(), "previews", "root")
	storages = map[string]chunkStorage.Storage{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	chunkRenders = renderers.ConstructRenderers(cfg.SubTree("render"))
	previews = previewcache.NewPreviewCache(nil, cfg.SubTree("previews"), ctx)

	exitchan := make(chan struct{})
	t.Cleanup(func() { close(exitchan) })
	return createRouter(exitchan)
}

func addTestStorage(t *testing.T) chunkStorage.ChunkStorage {
	t.Helper()
	d, err := filesystemChunkStorage.NewFilesystemChunkStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	storages["test"] = chunkStorage.Storage{
		Name:   "test",
		Type:   "filesystem",
		Driver: d,
	}
	return d
}

func TestChunksHandlerServesPayload(t *testing.T) {
	router := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/chunks/0/0/0?size=8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.Len(); got != 8*8*8 {
		t.Errorf("payload is %d bytes, want %d", got, 8*8*8)
	}
	if rec.Header().Get("X-Chunk-Size") != "8" {
		t.Errorf("X-Chunk-Size = %q, want 8", rec.Header().Get("X-Chunk-Size"))
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req = httptest.NewRequest("GET", "/api/v1/chunks/0/0/0?size=8", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional request status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("304 must not carry a payload")
	}
}

func TestChunksHandlerDeterministic(t *testing.T) {
	router := setupTestServer(t)

	get := func() []byte {
		req := httptest.NewRequest("GET", "/api/v1/chunks/3/-1/7?size=8&seed=walkabout", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		return rec.Body.Bytes()
	}
	if !bytes.Equal(get(), get()) {
		t.Error("equal requests should produce byte-identical payloads")
	}
}

func TestChunksHandlerSizeClamp(t *testing.T) {
	router := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/chunks/0/0/0?size=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Chunk-Size") != "4" {
		t.Errorf("X-Chunk-Size = %q, want clamped 4", rec.Header().Get("X-Chunk-Size"))
	}
	if got := rec.Body.Len(); got != 4*4*4 {
		t.Errorf("payload is %d bytes, want %d", got, 4*4*4)
	}
}

func TestChunksHandlerPersistsToStorage(t *testing.T) {
	router := setupTestServer(t)
	d := addTestStorage(t)

	req := httptest.NewRequest("GET", "/api/v1/chunks/0/0/0?size=8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	first := append([]byte(nil), rec.Body.Bytes()...)

	count, err := d.GetChunksCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("storage has %d chunks after first request, want 1", count)
	}

	// Second request must come out of storage, identical bytes.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/chunks/0/0/0?size=8", nil))
	if !bytes.Equal(first, rec.Body.Bytes()) {
		t.Error("stored chunk differs from generated one")
	}
	count, _ = d.GetChunksCount()
	if count != 1 {
		t.Errorf("storage has %d chunks after second request, want 1", count)
	}
}

func TestPreviewHandlerReturnsPng(t *testing.T) {
	router := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/preview/terrain/0/0?size=8&scale=16", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("preview is %v, want 16x16", img.Bounds())
	}
}

func TestPreviewHandlerUnknownVariant(t *testing.T) {
	router := setupTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/preview/nope/0/0", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
