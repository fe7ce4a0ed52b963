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

// Command roam walks an observer across the chunk grid against a
// VoxelStream server (or fully offline) and reports streaming stats.
// Useful for eyeballing cache hit behavior and exercising eviction.
package main

import (
	"flag"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/stream"
	"github.com/maxsupermanhd/VoxelStream/terrain"
)

var (
	server   = flag.String("server", "", "server base URL, empty generates locally")
	radius   = flag.Int("radius", 3, "view radius in chunks")
	steps    = flag.Int("steps", 64, "number of observer steps")
	interval = flag.Duration("interval", 50*time.Millisecond, "delay between steps")
	seed     = flag.String("seed", terrain.DefaultWorldSeed, "world seed")
	size     = flag.Int("size", terrain.DefaultChunkSize, "chunk size")
)

// countingRenderer stands in for a real graphics backend, it only
// tracks how many chunk meshes would be alive.
type countingRenderer struct {
	uploads int64
	alive   int64
}

type countingHandle struct {
	r *countingRenderer
}

func (h *countingHandle) Release() {
	atomic.AddInt64(&h.r.alive, -1)
}

func (r *countingRenderer) Upload(_ primitives.Buffer, _ int) (stream.Renderable, error) {
	atomic.AddInt64(&r.uploads, 1)
	atomic.AddInt64(&r.alive, 1)
	return &countingHandle{r: r}, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	params := terrain.DefaultParams(primitives.ChunkCoord{})
	params.WorldSeed = *seed
	params.Size = *size

	var fetcher stream.Fetcher
	if *server == "" {
		log.Println("No server given, generating locally")
		fetcher = stream.LocalFetcher{Params: params}
	} else {
		f := stream.NewHTTPFetcher(*server, params)
		f.SetHeader("X-Roam-Session", uuid.NewString())
		fetcher = f
	}

	renderer := &countingRenderer{}
	m := stream.NewManager(fetcher, renderer, *radius, params)

	cx, cz := 0, 0
	start := time.Now()
	for i := 0; i < *steps; i++ {
		m.EnsureAround(cx, cz)
		// Wander, biased forward so eviction actually happens.
		switch rand.Intn(4) {
		case 0:
			cz++
		case 1:
			cz--
		default:
			cx++
		}
		time.Sleep(*interval)
	}
	m.Wait()

	log.Printf("Walked %d steps in %s, ended at %dx %dz", *steps, time.Since(start).Round(time.Millisecond), cx, cz)
	log.Printf("Uploads: %d, resident: %d", atomic.LoadInt64(&renderer.uploads), m.ResidentCount())

	m.Close()
	m.Wait()
	if alive := atomic.LoadInt64(&renderer.alive); alive != 0 {
		log.Printf("Leak: %d handles still alive after close", alive)
	}
}
