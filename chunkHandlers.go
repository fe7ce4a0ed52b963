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

package main

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/maxsupermanhd/VoxelStream/chunkStorage"
	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/terrain"
)

// paramsFromRequest assembles generation parameters from the route
// coordinates and query overrides, starting from either the named
// preset or the defaults. Unknown or malformed overrides fall back to
// the previous value, generation must never fail on bad input.
func paramsFromRequest(r *http.Request) terrain.Params {
	vars := mux.Vars(r)
	cx, _ := strconv.Atoi(vars["cx"])
	cy, _ := strconv.Atoi(vars["cy"])
	cz, _ := strconv.Atoi(vars["cz"])
	coord := primitives.ChunkCoord{X: cx, Y: cy, Z: cz}

	q := r.URL.Query()
	p := terrain.DefaultParams(coord)
	if name := q.Get("preset"); name != "" {
		if pp, ok := lookupPreset(name); ok {
			p = pp
			p.Coord = coord
		}
	}
	if v := q.Get("size"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			p.Size = i
		}
	}
	if q.Has("seed") {
		p.WorldSeed = q.Get("seed")
	}
	if v := q.Get("base"); v != "" {
		p.BaseBlock = primitives.BlockByName(v)
	}
	if v := q.Get("surfaceScale"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.SurfaceScale = f
		}
	}
	if v := q.Get("cavesScale"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.CavesScale = f
		}
	}
	if v := q.Get("cavesThreshold"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.CavesThreshold = f
		}
	}
	if v := q.Get("grassDepth"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			p.GrassDepth = i
		}
	}
	if v := q.Get("dirtDepth"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			p.DirtDepth = i
		}
	}
	return p.Normalized()
}

// requestMatchesTag reports whether any If-None-Match candidate names
// the current content tag.
func requestMatchesTag(r *http.Request, tag string) bool {
	inm := r.Header.Get("If-None-Match")
	if inm == "" {
		return false
	}
	for _, cand := range strings.Split(inm, ",") {
		cand = strings.TrimSpace(cand)
		cand = strings.TrimPrefix(cand, "W/")
		cand = strings.Trim(cand, `"`)
		if cand == tag || cand == "*" {
			return true
		}
	}
	return false
}

func chunksHandler(w http.ResponseWriter, r *http.Request) {
	p := paramsFromRequest(r)
	key := terrain.KeyOf(p)
	tag := terrain.TagOf(key, p.Size)

	w.Header().Set("ETag", `W/"`+tag+`"`)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Chunk-Size", strconv.Itoa(p.Size))

	// Identical parameters always produce identical bytes, a tag match
	// saves both the lookup and the payload.
	if requestMatchesTag(r, tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	storagesLock.Lock()
	data, storageName := chunkStorage.FindChunk(storages, key)
	storagesLock.Unlock()
	if data != nil && len(data) != p.Size*p.Size*p.Size {
		log.Printf("Stored chunk %s from [%s] has %d bytes, want %d, regenerating", key, storageName, len(data), p.Size*p.Size*p.Size)
		data = nil
	}
	if data == nil {
		data = terrain.Generate(p)
		storagesLock.Lock()
		s := findCapableStorage(storages, cfg.GetDSString("", "preferred_storage"))
		storagesLock.Unlock()
		if s != nil {
			if err := s.AddChunk(key, tag, data); err != nil {
				log.Printf("Failed to store chunk %s: %s", key, err.Error())
			}
		}
		globalEventRouter.Broadcast(newStreamEvent("chunk_generated", p.Coord))
	} else {
		globalEventRouter.Broadcast(newStreamEvent("chunk_served", p.Coord))
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		log.Printf("Unable to write chunk: %s", err.Error())
	}
}
