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
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/mux"
	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/terrain"
	"gopkg.in/yaml.v3"
)

// terrainPreset is one named parameter set from the presets file.
// Omitted fields keep their defaults.
type terrainPreset struct {
	Size           *int     `yaml:"size"`
	Seed           *string  `yaml:"seed"`
	Base           *string  `yaml:"base"`
	SurfaceScale   *float64 `yaml:"surfaceScale"`
	CavesScale     *float64 `yaml:"cavesScale"`
	CavesThreshold *float64 `yaml:"cavesThreshold"`
	GrassDepth     *int     `yaml:"grassDepth"`
	DirtDepth      *int     `yaml:"dirtDepth"`
}

var (
	presetsLock   sync.RWMutex
	loadedPresets = map[string]terrainPreset{}
)

func (t terrainPreset) toParams() terrain.Params {
	p := terrain.DefaultParams(primitives.ChunkCoord{})
	if t.Size != nil {
		p.Size = *t.Size
	}
	if t.Seed != nil {
		p.WorldSeed = *t.Seed
	}
	if t.Base != nil {
		p.BaseBlock = primitives.BlockByName(*t.Base)
	}
	if t.SurfaceScale != nil {
		p.SurfaceScale = *t.SurfaceScale
	}
	if t.CavesScale != nil {
		p.CavesScale = *t.CavesScale
	}
	if t.CavesThreshold != nil {
		p.CavesThreshold = *t.CavesThreshold
	}
	if t.GrassDepth != nil {
		p.GrassDepth = *t.GrassDepth
	}
	if t.DirtDepth != nil {
		p.DirtDepth = *t.DirtDepth
	}
	return p.Normalized()
}

func lookupPreset(name string) (terrain.Params, bool) {
	presetsLock.RLock()
	t, ok := loadedPresets[name]
	presetsLock.RUnlock()
	if !ok {
		return terrain.Params{}, false
	}
	return t.toParams(), true
}

func loadPresets(path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Println("Failed to read presets: " + err.Error())
		return
	}
	next := map[string]terrainPreset{}
	if err := yaml.Unmarshal(b, &next); err != nil {
		log.Println("Failed to parse presets: " + err.Error())
		return
	}
	presetsLock.Lock()
	loadedPresets = next
	presetsLock.Unlock()
	log.Printf("Loaded %d terrain presets", len(next))
}

// presetManager loads the presets file and reloads it whenever it
// changes on disk.
func presetManager(exitchan <-chan struct{}) {
	path := cfg.GetDSString("presets.yaml", "presets_path")
	loadPresets(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Println("Failed to create presets watcher: " + err.Error())
		return
	}
	defer watcher.Close()
	// Watch the directory, editors often replace the file instead of
	// writing into it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.Println("Failed to add presets watcher path: " + err.Error())
		return
	}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				log.Println("Presets watcher failed to read from events channel")
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Println("Reloading terrain presets")
				loadPresets(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				log.Println("Presets watcher failed to read from error channel")
				return
			}
			log.Println("Presets watcher error:", err)
		case <-exitchan:
			return
		}
	}
}

func apiListPresets(w http.ResponseWriter, _ *http.Request) (int, string) {
	presetsLock.RLock()
	names := make([]string, 0, len(loadedPresets))
	for name := range loadedPresets {
		names = append(names, name)
	}
	presetsLock.RUnlock()
	sort.Strings(names)
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, names)
}

func apiGetPreset(w http.ResponseWriter, r *http.Request) (int, string) {
	name := mux.Vars(r)["preset"]
	p, ok := lookupPreset(name)
	if !ok {
		return http.StatusNotFound, "Preset not found"
	}
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, map[string]any{
		"size":           p.Size,
		"seed":           p.WorldSeed,
		"base":           p.BaseBlock.String(),
		"surfaceScale":   p.SurfaceScale,
		"cavesScale":     p.CavesScale,
		"cavesThreshold": p.CavesThreshold,
		"grassDepth":     p.GrassDepth,
		"dirtDepth":      p.DirtDepth,
	})
}
