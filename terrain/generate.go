package terrain

import (
	"fmt"

	"github.com/maxsupermanhd/VoxelStream/primitives"
)

// Channel constants decorrelate the surface and cave noise fields that
// are derived from the same world seed and chunk origin.
const (
	channelSurface uint32 = 0x9e3779b9
	channelCaves   uint32 = 0x85ebca6b
)

// chunkSeed derives a noise seed from the world seed and the chunk's
// voxel-space world origin. Seeding from the origin (not the chunk
// coordinate) keeps neighbouring chunks on the same continuous field.
func chunkSeed(worldSeed string, ox, oy, oz int, channel uint32) float64 {
	return ToUnitFloat(Mix(
		Hash(worldSeed),
		uint32(int32(ox)),
		uint32(int32(oy)),
		uint32(int32(oz)),
		channel,
	))
}

// Generate produces the voxel buffer for p. Pure and deterministic:
// no shared state is touched, so any number of Generate calls may run
// in parallel.
func Generate(p Params) primitives.Buffer {
	p = p.Normalized()
	size := p.Size
	ox, oy, oz := p.Coord.X*size, p.Coord.Y*size, p.Coord.Z*size

	surface := NewNoise(chunkSeed(p.WorldSeed, ox, oy, oz, channelSurface))
	caves := NewNoise(chunkSeed(p.WorldSeed, ox, oy, oz, channelCaves))

	buf := primitives.NewBuffer(size)

	// Phase 1: base fill.
	for i := range buf {
		buf[i] = byte(p.BaseBlock)
	}

	// Phase 2: heightmap surface carving. Single-valued per column, so
	// this phase alone never produces overhangs.
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			h := surface.Sample2(float64(x+ox)*p.SurfaceScale, float64(z+oz)*p.SurfaceScale)
			maxY := int(h * float64(size))
			for y := maxY + 1; y < size; y++ {
				buf.Set(size, x, y, z, primitives.BlockAir)
			}
		}
	}

	// Phase 3: volumetric cave carving. Strictly greater-than, so a
	// threshold of 1 disables carving entirely. Pockets may come out
	// disconnected, which is accepted terrain.
	carveCaves(buf, size, ox, oy, oz, caves, p.CavesScale, p.CavesThreshold)

	// Phase 4: surface painting, grass before dirt, both matching the
	// original base block.
	paintContiguous(buf, size, p.BaseBlock, primitives.BlockGrass, p.GrassDepth)
	paintScatter(buf, size, p.BaseBlock, primitives.BlockDirt, p.DirtDepth)

	return buf
}

func carveCaves(buf primitives.Buffer, size, ox, oy, oz int, n *Noise, scale, threshold float64) {
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				s := n.Sample3(float64(x+ox)*scale, float64(y+oy)*scale, float64(z+oz)*scale)
				if s > threshold {
					buf.Set(size, x, y, z, primitives.BlockAir)
				}
			}
		}
	}
}

// columnTop finds the highest non-air voxel of a column, or -1 for a
// fully carved column.
func columnTop(buf primitives.Buffer, size, x, z int) int {
	for y := size - 1; y >= 0; y-- {
		if checkKnown(buf.At(size, x, y, z)) != primitives.BlockAir {
			return y
		}
	}
	return -1
}

// paintContiguous replaces up to depth voxels per column, starting at
// the column top and stopping at the first voxel that is air or not
// the from type. Skins only unbroken exposed base material.
func paintContiguous(buf primitives.Buffer, size int, from, to primitives.BlockType, depth int) {
	if depth <= 0 {
		return
	}
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			y := columnTop(buf, size, x, z)
			if y < 0 {
				continue
			}
			for left := depth; left > 0 && y >= 0; y-- {
				if checkKnown(buf.At(size, x, y, z)) != from {
					break
				}
				buf.Set(size, x, y, z, to)
				left--
			}
		}
	}
}

// paintScatter replaces up to depth voxels per column scanning down
// from the top, skipping non-matching voxels without ending the scan.
// The budget only shrinks on an actual replacement, which lets dirt
// settle underneath a grass skin painted moments earlier. A from of
// air means "replace any non-air voxel".
func paintScatter(buf primitives.Buffer, size int, from, to primitives.BlockType, depth int) {
	if depth <= 0 {
		return
	}
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			y := columnTop(buf, size, x, z)
			if y < 0 {
				continue
			}
			for left := depth; left > 0 && y >= 0; y-- {
				cur := checkKnown(buf.At(size, x, y, z))
				if cur == from || (from == primitives.BlockAir && cur != primitives.BlockAir) {
					buf.Set(size, x, y, z, to)
					left--
				}
			}
		}
	}
}

// checkKnown guards the closed block enumeration. A code outside it
// can only mean corrupted generation state, which is not recoverable.
func checkKnown(b primitives.BlockType) primitives.BlockType {
	if !primitives.Known(b) {
		panic(fmt.Sprintf("block code %d outside known enumeration", uint8(b)))
	}
	return b
}
