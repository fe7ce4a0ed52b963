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

package sqliteChunkStorage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

type SqliteChunkStorage struct {
	db *sql.DB
}

func NewSqliteChunkStorage(path string) (*SqliteChunkStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to exec %q: %w", p, err)
		}
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		key TEXT PRIMARY KEY,
		tag TEXT NOT NULL,
		data BLOB NOT NULL,
		created_at INTEGER NOT NULL DEFAULT (unixepoch()))`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteChunkStorage{db: db}, nil
}

func (s *SqliteChunkStorage) Close() error {
	return s.db.Close()
}

func (s *SqliteChunkStorage) GetStatus() (ver string, err error) {
	err = s.db.QueryRow("SELECT sqlite_version()").Scan(&ver)
	return "sqlite " + ver, err
}

func (s *SqliteChunkStorage) GetChunksCount() (count uint64, err error) {
	err = s.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

func (s *SqliteChunkStorage) GetChunksSize() (size uint64, err error) {
	err = s.db.QueryRow("SELECT COALESCE(SUM(length(data)), 0) FROM chunks").Scan(&size)
	return size, err
}

func (s *SqliteChunkStorage) GetChunk(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM chunks WHERE key = ?", key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *SqliteChunkStorage) AddChunk(key, tag string, data []byte) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO chunks (key, tag, data) VALUES (?, ?, ?)", key, tag, data)
	return err
}
