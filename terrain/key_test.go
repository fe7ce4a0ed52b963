package terrain

import (
	"testing"

	"github.com/maxsupermanhd/VoxelStream/primitives"
)

func TestKeySingleFieldChanges(t *testing.T) {
	base := DefaultParams(primitives.ChunkCoord{X: 1, Y: 2, Z: 3})
	baseKey := KeyOf(base)

	mutations := map[string]func(*Params){
		"size":           func(p *Params) { p.Size = 32 },
		"seed":           func(p *Params) { p.WorldSeed = "other" },
		"base":           func(p *Params) { p.BaseBlock = primitives.BlockDirt },
		"cx":             func(p *Params) { p.Coord.X = -1 },
		"cy":             func(p *Params) { p.Coord.Y = 9 },
		"cz":             func(p *Params) { p.Coord.Z = 0 },
		"surfaceScale":   func(p *Params) { p.SurfaceScale = 0.05 },
		"cavesScale":     func(p *Params) { p.CavesScale = 0.2 },
		"cavesThreshold": func(p *Params) { p.CavesThreshold = 0.5 },
		"grassDepth":     func(p *Params) { p.GrassDepth = 1 },
		"dirtDepth":      func(p *Params) { p.DirtDepth = 4 },
	}
	for name, mutate := range mutations {
		p := base
		mutate(&p)
		if KeyOf(p) == baseKey {
			t.Errorf("changing %s did not change the cache key", name)
		}
	}
	if KeyOf(base) != baseKey {
		t.Error("key is not stable")
	}
}

func TestTagDisambiguatesSize(t *testing.T) {
	key := KeyOf(DefaultParams(primitives.ChunkCoord{}))
	if TagOf(key, 16) == TagOf(key, 32) {
		t.Error("tags for different sizes should differ")
	}
	if TagOf(key, 16) != TagOf(key, 16) {
		t.Error("tag is not stable")
	}
}
