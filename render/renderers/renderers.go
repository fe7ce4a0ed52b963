package renderers

import (
	"encoding/json"
	"image/color"
	"log"
	"os"

	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/render"
	"github.com/maxsupermanhd/lac"
)

func ConstructRenderers(cfg *lac.ConfSubtree) []render.ChunkRenderer {
	colors := loadBlockColors(cfg)
	return []render.ChunkRenderer{
		NewTerrainChunkRenderer(colors),
		NewHeightmapChunkRenderer(),
		NewCavesChunkRenderer(),
	}
}

// loadBlockColors starts from the built-in palette and applies
// overrides from an optional JSON file mapping block name to [r,g,b,a].
func loadBlockColors(cfg *lac.ConfSubtree) map[primitives.BlockType]color.RGBA {
	colors := map[primitives.BlockType]color.RGBA{}
	for b, c := range defaultBlockColors {
		colors[b] = c
	}
	path := cfg.GetDSString("", "blockColorsPath")
	if path == "" {
		return colors
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Failed to read block colors from %q: %s", path, err.Error())
		return colors
	}
	var overrides map[string][4]uint8
	if err := json.Unmarshal(b, &overrides); err != nil {
		log.Printf("Failed to parse block colors from %q: %s", path, err.Error())
		return colors
	}
	for name, c := range overrides {
		bt := primitives.BlockByName(name)
		if bt.String() != name {
			log.Printf("Unknown block %q in %q", name, path)
			continue
		}
		colors[bt] = color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	return colors
}
