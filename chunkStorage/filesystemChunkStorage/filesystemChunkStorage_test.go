package filesystemChunkStorage

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	s, err := NewFilesystemChunkStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	key := `16|seed|stone|0|0|0|0.04|0.16|0.72|2|3`
	data := bytes.Repeat([]byte{1, 2, 3, 0}, 1024)

	got, err := s.GetChunk(key)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("missing chunk should return nil data, nil error")
	}

	if err := s.AddChunk(key, "deadbeef-16", data); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetChunk(key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("stored and loaded chunk differ")
	}

	count, err := s.GetChunksCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("chunk count = %d, want 1", count)
	}
	size, err := s.GetChunksSize()
	if err != nil {
		t.Fatal(err)
	}
	if size == 0 {
		t.Error("chunk size should be non-zero")
	}
}

func TestOverwriteReplaces(t *testing.T) {
	s, err := NewFilesystemChunkStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.AddChunk("k", "a-16", []byte{1}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddChunk("k", "b-16", []byte{2}); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetChunk("k")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{2}) {
		t.Error("overwrite should replace the stored data")
	}
	count, _ := s.GetChunksCount()
	if count != 1 {
		t.Errorf("chunk count = %d, want 1", count)
	}
}

func TestDistinctKeysDistinctFiles(t *testing.T) {
	s, err := NewFilesystemChunkStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.AddChunk("16|seed|stone|0|0|0", "", []byte{1}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddChunk("16|seed|stone|0|0|1", "", []byte{2}); err != nil {
		t.Fatal(err)
	}
	a, _ := s.GetChunk("16|seed|stone|0|0|0")
	b, _ := s.GetChunk("16|seed|stone|0|0|1")
	if bytes.Equal(a, b) {
		t.Error("distinct keys must not share a file")
	}
}
