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
	"bytes"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	previewcache "github.com/maxsupermanhd/VoxelStream/previewCache"
	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/terrain"
	"github.com/nfnt/resize"
)

func previewScale(r *http.Request, size int) int {
	scale := 256
	if v := r.URL.Query().Get("scale"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			scale = i
		}
	}
	if scale < size {
		scale = size
	}
	if scale > 2048 {
		scale = 2048
	}
	return scale
}

func previewHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	variant := vars["variant"]
	var rend func(buf primitives.Buffer, size int) *image.RGBA
	for _, cr := range chunkRenders {
		if cr.Name == variant {
			rend = cr.Render
			break
		}
	}
	if rend == nil {
		http.Error(w, "Unknown preview variant", http.StatusBadRequest)
		return
	}

	p := paramsFromRequest(r)
	key := terrain.KeyOf(p)
	tag := terrain.TagOf(key, p.Size)
	scale := previewScale(r, p.Size)

	// The content tag pins every generation parameter, a preview keyed
	// by it can never go stale.
	loc := previewcache.PreviewLocation{
		Variant: variant,
		Seed:    tag,
		Size:    p.Size,
		Scale:   scale,
		X:       p.Coord.X,
		Z:       p.Coord.Z,
	}
	if cached := previews.GetPreviewBlocking(loc); cached != nil && cached.Data != nil {
		writePreviewPng(w, cached.Data)
		return
	}

	buf := terrain.Generate(p)
	img := rend(buf, p.Size)
	if scale != p.Size {
		scaled := resize.Resize(uint(scale), uint(scale), img, resize.NearestNeighbor)
		rgba, ok := scaled.(*image.RGBA)
		if !ok {
			rgba = image.NewRGBA(scaled.Bounds())
			for y := rgba.Rect.Min.Y; y < rgba.Rect.Max.Y; y++ {
				for x := rgba.Rect.Min.X; x < rgba.Rect.Max.X; x++ {
					rgba.Set(x, y, scaled.At(x, y))
				}
			}
		}
		img = rgba
	}

	b := bytes.NewBuffer([]byte{})
	if err := png.Encode(b, img); err != nil {
		log.Printf("Failed to encode preview: %v", err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	previews.SetPreview(loc, b.Bytes())
	writePreviewPng(w, b.Bytes())
}

func writePreviewPng(w http.ResponseWriter, dat []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(dat)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(dat); err != nil {
		log.Printf("Unable to write preview: %s", err.Error())
	}
}
