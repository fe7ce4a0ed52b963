/*
	VoxelStream, server for procedural voxel terrain
	Copyright (C) 2023 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package filesystemChunkStorage

import (
	"encoding/base32"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// FilesystemChunkStorage keeps zstd-compressed voxel buffers as flat
// files, one per cache key.
type FilesystemChunkStorage struct {
	root string
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Keys carry characters that are unsafe in filenames, encode the whole
// key instead of hashing it so distinct keys can never collide.
var keyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

func NewFilesystemChunkStorage(root string) (*FilesystemChunkStorage, error) {
	if err := os.MkdirAll(root, 0764); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &FilesystemChunkStorage{root: root, enc: enc, dec: dec}, nil
}

func (s *FilesystemChunkStorage) chunkPath(key string) string {
	return filepath.Join(s.root, keyEncoding.EncodeToString([]byte(key))+".zst")
}

func (s *FilesystemChunkStorage) GetStatus() (string, error) {
	c, err := s.GetChunksCount()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("filesystem storage at %s (%d chunks)", s.root, c), nil
}

func (s *FilesystemChunkStorage) GetChunksCount() (count uint64, err error) {
	err = filepath.WalkDir(s.root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".zst") {
			count++
		}
		return nil
	})
	return count, err
}

func (s *FilesystemChunkStorage) GetChunksSize() (size uint64, err error) {
	err = filepath.WalkDir(s.root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".zst") {
			return nil
		}
		i, err := d.Info()
		if err != nil {
			return err
		}
		size += uint64(i.Size())
		return nil
	})
	return size, err
}

func (s *FilesystemChunkStorage) GetChunk(key string) ([]byte, error) {
	b, err := os.ReadFile(s.chunkPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return s.dec.DecodeAll(b, nil)
}

func (s *FilesystemChunkStorage) AddChunk(key, _ string, data []byte) error {
	p := s.chunkPath(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, s.enc.EncodeAll(data, nil), 0664); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (s *FilesystemChunkStorage) Close() error {
	err := s.enc.Close()
	s.dec.Close()
	return err
}
