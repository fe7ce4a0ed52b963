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

package postgresChunkStorage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PostgresChunkStorage struct {
	dbpool *pgxpool.Pool
}

func NewPostgresChunkStorage(ctx context.Context, connection string) (*PostgresChunkStorage, error) {
	p, err := pgxpool.Connect(ctx, connection)
	if err != nil {
		return nil, err
	}
	_, err = p.Exec(ctx, `CREATE TABLE IF NOT EXISTS chunks (
		key text PRIMARY KEY,
		tag text NOT NULL,
		data bytea NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now())`)
	if err != nil {
		p.Close()
		return nil, err
	}
	return &PostgresChunkStorage{dbpool: p}, nil
}

func (s *PostgresChunkStorage) Close() error {
	s.dbpool.Close()
	return nil
}

func (s *PostgresChunkStorage) GetStatus() (ver string, err error) {
	err = s.dbpool.QueryRow(context.Background(), "SELECT version()").Scan(&ver)
	return ver, err
}

func (s *PostgresChunkStorage) GetChunksCount() (count uint64, err error) {
	err = s.dbpool.QueryRow(context.Background(), "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

func (s *PostgresChunkStorage) GetChunksSize() (size uint64, err error) {
	err = s.dbpool.QueryRow(context.Background(), "SELECT COALESCE(SUM(length(data)), 0) FROM chunks").Scan(&size)
	return size, err
}

func (s *PostgresChunkStorage) GetChunk(key string) ([]byte, error) {
	var data []byte
	err := s.dbpool.QueryRow(context.Background(), "SELECT data FROM chunks WHERE key = $1", key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *PostgresChunkStorage) AddChunk(key, tag string, data []byte) error {
	_, err := s.dbpool.Exec(context.Background(), `INSERT INTO chunks (key, tag, data) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET tag = EXCLUDED.tag, data = EXCLUDED.data`, key, tag, data)
	return err
}
