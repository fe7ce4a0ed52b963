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
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/maxsupermanhd/lac"

	"github.com/maxsupermanhd/VoxelStream/chunkStorage"
	previewcache "github.com/maxsupermanhd/VoxelStream/previewCache"
	"github.com/maxsupermanhd/VoxelStream/render"
	"github.com/maxsupermanhd/VoxelStream/render/renderers"
)

var (
	BuildTime  = "00000000.000000"
	CommitHash = "0000000"
	GoVersion  = "0.0"
	GitTag     = "0.0"
)

var (
	cfg           *lac.Conf
	mainCtx       context.Context
	mainCtxCancel context.CancelFunc
	previews      *previewcache.PreviewCache
	chunkRenders  []render.ChunkRenderer
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		GoVersion = buildinfo.GoVersion
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to load .env: " + err.Error())
	}
	configPath := os.Getenv("VOXELSTREAM_CONFIG")
	if configPath == "" {
		configPath = "config.json"
	}
	var err error
	cfg, err = lac.FromFileJSON(configPath)
	if err != nil {
		log.Println("Failed to load config, using defaults: " + err.Error())
		cfg = lac.NewConf()
	}

	log.SetOutput(io.MultiWriter(createLogger(), os.Stdout))
	log.Println()
	log.Println("VoxelStream is starting up...")
	log.Printf("Built %s, Ver %s (%s)\n", BuildTime, GitTag, CommitHash)
	log.Println()

	mainCtx, mainCtxCancel = context.WithCancel(context.Background())

	chunkRenders = renderers.ConstructRenderers(cfg.SubTree("render"))
	previews = previewcache.NewPreviewCache(log.Default(), cfg.SubTree("previews"), mainCtx)

	if err := initStorages(); err != nil {
		log.Fatal("Failed to initialize storages: " + err.Error())
	}
	defer func() {
		if err := chunkStorage.CloseStorages(storages); err != nil {
			log.Println("Failed to close storages: " + err.Error())
		}
	}()

	closeEventRouter := startBackgroundRoutine("event router", globalEventRouter.Run)
	defer closeEventRouter()
	closePresets := startBackgroundRoutine("preset manager", presetManager)
	defer closePresets()
	closeWeb := startBackgroundRoutine("web server", runWeb)
	defer closeWeb()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	select {
	case <-signals:
		log.Println("Interrupt received, shutting down...")
	case <-mainCtx.Done():
	}
	mainCtxCancel()
	previews.WaitExit()
}
