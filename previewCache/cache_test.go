package previewcache

import (
	"bytes"
	"context"
	"testing"

	"github.com/maxsupermanhd/lac"
)

func testCache(t *testing.T, root string) (*PreviewCache, context.CancelFunc) {
	t.Helper()
	cfg := lac.NewConf()
	cfg.Set(root, "previews", "root")
	ctx, cancel := context.WithCancel(context.Background())
	return NewPreviewCache(nil, cfg.SubTree("previews"), ctx), cancel
}

func TestPreviewRoundTrip(t *testing.T) {
	c, cancel := testCache(t, t.TempDir())
	defer func() {
		cancel()
		c.WaitExit()
	}()

	loc := PreviewLocation{Variant: "terrain", Seed: "cafebabe-16", Size: 16, Scale: 256, X: 3, Z: -7}
	if got := c.GetPreviewBlocking(loc); got.Data != nil {
		t.Fatal("empty cache should miss")
	}

	payload := []byte("not really a png")
	c.SetPreview(loc, payload)
	got := c.GetPreviewBlocking(loc)
	if !bytes.Equal(got.Data, payload) {
		t.Errorf("got %q, want %q", got.Data, payload)
	}
}

func TestPreviewSurvivesRestart(t *testing.T) {
	root := t.TempDir()
	loc := PreviewLocation{Variant: "heightmap", Seed: "deadbeef-8", Size: 8, Scale: 64, X: 0, Z: 0}
	payload := []byte("persisted bytes")

	c, cancel := testCache(t, root)
	c.SetPreview(loc, payload)
	if got := c.GetPreviewBlocking(loc); got.Data == nil {
		t.Fatal("preview should be readable right after set")
	}
	cancel()
	c.WaitExit()

	c2, cancel2 := testCache(t, root)
	defer func() {
		cancel2()
		c2.WaitExit()
	}()
	got := c2.GetPreviewBlocking(loc)
	if !bytes.Equal(got.Data, payload) {
		t.Errorf("after restart got %q, want %q", got.Data, payload)
	}
	if !got.SyncedToDisk {
		t.Error("disk loaded preview should be marked synced")
	}
}
