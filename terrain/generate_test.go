package terrain

import (
	"bytes"
	"testing"

	"github.com/maxsupermanhd/VoxelStream/primitives"
)

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultParams(primitives.ChunkCoord{X: -3, Y: 0, Z: 7})
	a := Generate(p)
	b := Generate(p)
	if !bytes.Equal(a, b) {
		t.Error("equal params should produce byte-identical buffers")
	}
}

func TestGenerateSizeClamp(t *testing.T) {
	p := DefaultParams(primitives.ChunkCoord{})
	p.Size = 1
	if got := len(Generate(p)); got != MinChunkSize*MinChunkSize*MinChunkSize {
		t.Errorf("size 1 should clamp to %d, buffer has %d voxels", MinChunkSize, got)
	}
	p.Size = 9999
	if got := len(Generate(p)); got != MaxChunkSize*MaxChunkSize*MaxChunkSize {
		t.Errorf("size 9999 should clamp to %d, buffer has %d voxels", MaxChunkSize, got)
	}
}

func TestGenerateNeighborsDiffer(t *testing.T) {
	a := Generate(DefaultParams(primitives.ChunkCoord{X: 0}))
	b := Generate(DefaultParams(primitives.ChunkCoord{X: 1}))
	if bytes.Equal(a, b) {
		t.Error("neighbouring chunks should not be identical")
	}
}

func TestPaintingLayerOrder(t *testing.T) {
	p := DefaultParams(primitives.ChunkCoord{X: 2, Z: -5})
	p.CavesThreshold = 1 // no caves, keep columns unbroken
	p.GrassDepth = 2
	p.DirtDepth = 3
	buf := Generate(p)

	checked := 0
	for z := 0; z < p.Size; z++ {
		for x := 0; x < p.Size; x++ {
			top := columnTop(buf, p.Size, x, z)
			if top < 4 {
				continue // not tall enough for the full 5 layer stack
			}
			checked++
			for d := 0; d < 2; d++ {
				if got := buf.At(p.Size, x, top-d, z); got != primitives.BlockGrass {
					t.Fatalf("column %d,%d depth %d = %v, want grass", x, z, d, got)
				}
			}
			for d := 2; d < 5; d++ {
				if got := buf.At(p.Size, x, top-d, z); got != primitives.BlockDirt {
					t.Fatalf("column %d,%d depth %d = %v, want dirt", x, z, d, got)
				}
			}
			if top >= 5 {
				if got := buf.At(p.Size, x, top-5, z); got != primitives.BlockStone {
					t.Fatalf("column %d,%d depth 5 = %v, want stone", x, z, got)
				}
			}
		}
	}
	if checked == 0 {
		t.Fatal("no column was tall enough to exercise painting")
	}
}

func TestContiguousStopsAtMismatch(t *testing.T) {
	const size = 4
	buf := primitives.NewBuffer(size)
	// Column top to bottom: stone, dirt, stone.
	buf.Set(size, 0, 2, 0, primitives.BlockStone)
	buf.Set(size, 0, 1, 0, primitives.BlockDirt)
	buf.Set(size, 0, 0, 0, primitives.BlockStone)

	paintContiguous(buf, size, primitives.BlockStone, primitives.BlockGrass, 1)
	if got := buf.At(size, 0, 2, 0); got != primitives.BlockGrass {
		t.Errorf("top = %v, want grass", got)
	}
	if got := buf.At(size, 0, 1, 0); got != primitives.BlockDirt {
		t.Errorf("middle = %v, want untouched dirt", got)
	}
	if got := buf.At(size, 0, 0, 0); got != primitives.BlockStone {
		t.Errorf("bottom = %v, want untouched stone", got)
	}

	// Scatter mode skips the dirt voxel but keeps scanning down.
	paintScatter(buf, size, primitives.BlockStone, primitives.BlockDirt, 2)
	if got := buf.At(size, 0, 2, 0); got != primitives.BlockGrass {
		t.Errorf("top after scatter = %v, want grass", got)
	}
	if got := buf.At(size, 0, 0, 0); got != primitives.BlockDirt {
		t.Errorf("bottom after scatter = %v, want dirt", got)
	}
}

func TestPaintingSkipsAirColumns(t *testing.T) {
	const size = 4
	buf := primitives.NewBuffer(size)
	paintContiguous(buf, size, primitives.BlockStone, primitives.BlockGrass, 2)
	paintScatter(buf, size, primitives.BlockStone, primitives.BlockDirt, 2)
	for _, b := range buf {
		if primitives.BlockType(b) != primitives.BlockAir {
			t.Fatal("painting touched a fully carved column")
		}
	}
}

func TestCaveThresholdBoundary(t *testing.T) {
	const size = 8
	buf := primitives.NewBuffer(size)
	for i := range buf {
		buf[i] = byte(primitives.BlockStone)
	}
	// Samples never exceed 1, and carving is strictly greater-than.
	carveCaves(buf, size, 0, 0, 0, NewNoise(0.5), 0.3, 1.0)
	for i, b := range buf {
		if primitives.BlockType(b) != primitives.BlockStone {
			t.Fatalf("voxel %d carved at threshold 1.0", i)
		}
	}

	carveCaves(buf, size, 0, 0, 0, NewNoise(0.5), 0.3, 0.0)
	carved := false
	for _, b := range buf {
		if primitives.BlockType(b) == primitives.BlockAir {
			carved = true
			break
		}
	}
	if !carved {
		t.Error("threshold 0 should carve nearly everything")
	}
}
