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
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	humanize "github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
)

func apiStoragesGET(_ http.ResponseWriter, _ *http.Request) (int, string) {
	type storageStatus struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Online bool   `json:"online"`
		Chunks uint64 `json:"chunks"`
		Size   string `json:"size"`
	}
	ret := []storageStatus{}
	storagesLock.Lock()
	defer storagesLock.Unlock()
	for name, s := range storages {
		st := storageStatus{
			Name:   name,
			Type:   s.Type,
			Online: s.Driver != nil,
		}
		if s.Driver != nil {
			st.Chunks, _ = s.Driver.GetChunksCount()
			size, _ := s.Driver.GetChunksSize()
			st.Size = humanize.IBytes(size)
		}
		ret = append(ret, st)
	}
	return marshalOrFail(200, ret)
}

func apiStorageReinit(_ http.ResponseWriter, r *http.Request) (int, string) {
	sname := mux.Vars(r)["storage"]
	storagesLock.Lock()
	defer storagesLock.Unlock()
	s, ok := storages[sname]
	if !ok {
		return 404, ""
	}
	if s.Driver != nil {
		return 200, "Already initialized"
	}
	d, err := initStorage(s.Type, s.Address)
	if err != nil {
		return 500, err.Error()
	}
	ver, err := d.GetStatus()
	if err != nil {
		return 500, err.Error()
	}
	s.Driver = d
	storages[sname] = s
	return 200, ver
}

func apiStatus(w http.ResponseWriter, _ *http.Request) (int, string) {
	loadavg, _ := load.Avg()
	virtmem, _ := mem.VirtualMemory()
	uptime, _ := host.Uptime()
	uptimetime, _ := time.ParseDuration(strconv.Itoa(int(uptime)) + "s")

	status := map[string]any{
		"build":    fmt.Sprintf("%s %s built %s %s", GitTag, CommitHash, BuildTime, GoVersion),
		"uptime":   uptimetime.String(),
		"load":     loadavg,
		"memUsed":  humanize.IBytes(virtmem.Used),
		"memTotal": humanize.IBytes(virtmem.Total),
		"previews": previews.GetStats(),
	}
	setContentTypeJson(w)
	return marshalOrFail(200, status)
}

func cfgHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	spew.Fdump(w, cfg)
}
