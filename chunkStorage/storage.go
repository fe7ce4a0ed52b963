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

package chunkStorage

import (
	"errors"
	"log"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrReadOnly       = errors.New("storage is read-only")
)

// Everything returns nil data if the specified chunk is not found,
// error only in case of abnormal things.
type ChunkStorage interface {
	GetStatus() (string, error)
	GetChunksCount() (uint64, error)
	GetChunksSize() (uint64, error)

	GetChunk(key string) ([]byte, error)
	AddChunk(key, tag string, data []byte) error

	Close() error
}

type Storage struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Address string       `json:"addr"`
	Driver  ChunkStorage `json:"-"`
}

// FindChunk checks the storages in order and returns the first hit
// along with the name of the storage it came from.
func FindChunk(storages map[string]Storage, key string) ([]byte, string) {
	for name, s := range storages {
		if s.Driver == nil {
			continue
		}
		data, err := s.Driver.GetChunk(key)
		if err != nil {
			log.Printf("Failed to get chunk from storage %s: %s", name, err.Error())
			continue
		}
		if data != nil {
			return data, name
		}
	}
	return nil, ""
}

func CloseStorages(storages map[string]Storage) error {
	var errs *multierror.Error
	for name, s := range storages {
		if s.Driver == nil {
			continue
		}
		if err := s.Driver.Close(); err != nil {
			log.Printf("Error closing storage [%v] of type %v: %v", name, s.Type, err)
			errs = multierror.Append(errs, err)
		}
		s.Driver = nil
		storages[name] = s
	}
	return errs.ErrorOrNil()
}
