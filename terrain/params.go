package terrain

import (
	"github.com/maxsupermanhd/VoxelStream/primitives"
)

const (
	MinChunkSize = 4
	MaxChunkSize = 128

	DefaultChunkSize      = 16
	DefaultWorldSeed      = "seed"
	DefaultSurfaceScale   = 0.04
	DefaultCavesScale     = 0.16
	DefaultCavesThreshold = 0.72
	DefaultGrassDepth     = 2
	DefaultDirtDepth      = 3
)

// Params fully determines a generated chunk. Two equal Params values
// always produce byte-identical buffers.
//
// Scales outside (0, 0.5] give degenerate terrain (flat or pure
// static) but are not rejected; the pipeline clamps only Size.
type Params struct {
	Size           int
	WorldSeed      string
	BaseBlock      primitives.BlockType
	Coord          primitives.ChunkCoord
	SurfaceScale   float64
	CavesScale     float64
	CavesThreshold float64
	GrassDepth     int
	DirtDepth      int
}

// DefaultParams is the parameter set used when a request omits
// everything but the coordinate, and by the streaming fallback path.
func DefaultParams(coord primitives.ChunkCoord) Params {
	return Params{
		Size:           DefaultChunkSize,
		WorldSeed:      DefaultWorldSeed,
		BaseBlock:      primitives.BlockStone,
		Coord:          coord,
		SurfaceScale:   DefaultSurfaceScale,
		CavesScale:     DefaultCavesScale,
		CavesThreshold: DefaultCavesThreshold,
		GrassDepth:     DefaultGrassDepth,
		DirtDepth:      DefaultDirtDepth,
	}
}

// Normalized clamps Size into [MinChunkSize, MaxChunkSize] and floors
// negative layer depths to zero. Out of range values are corrected,
// never rejected, so a request always produces terrain.
func (p Params) Normalized() Params {
	if p.Size < MinChunkSize {
		p.Size = MinChunkSize
	}
	if p.Size > MaxChunkSize {
		p.Size = MaxChunkSize
	}
	if p.GrassDepth < 0 {
		p.GrassDepth = 0
	}
	if p.DirtDepth < 0 {
		p.DirtDepth = 0
	}
	return p
}
