package renderers

import (
	"testing"

	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/render"
	"github.com/maxsupermanhd/VoxelStream/terrain"
)

func TestRenderersProduceFullSizeImages(t *testing.T) {
	p := terrain.DefaultParams(primitives.ChunkCoord{X: 1, Z: -2})
	buf := terrain.Generate(p)

	rends := []render.ChunkRenderer{
		NewTerrainChunkRenderer(defaultBlockColors),
		NewHeightmapChunkRenderer(),
		NewCavesChunkRenderer(),
	}
	for _, r := range rends {
		img := r.Render(buf, p.Size)
		if img.Bounds().Dx() != p.Size || img.Bounds().Dy() != p.Size {
			t.Errorf("renderer %s produced %v, want %dx%d", r.Name, img.Bounds(), p.Size, p.Size)
		}
	}
}

func TestTerrainRendererAirIsTransparent(t *testing.T) {
	const size = 4
	buf := primitives.NewBuffer(size)
	buf.Set(size, 1, 0, 1, primitives.BlockStone)

	img := NewTerrainChunkRenderer(defaultBlockColors).Render(buf, size)
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("empty column should stay transparent")
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a == 0 {
		t.Error("filled column should be opaque")
	}
}

func TestHeightmapRendererScalesWithHeight(t *testing.T) {
	const size = 8
	buf := primitives.NewBuffer(size)
	buf.Set(size, 0, 1, 0, primitives.BlockStone)
	buf.Set(size, 1, 6, 0, primitives.BlockStone)

	img := NewHeightmapChunkRenderer().Render(buf, size)
	low := img.RGBAAt(0, 0)
	high := img.RGBAAt(1, 0)
	if low.R >= high.R {
		t.Errorf("low column (%d) should be darker than high column (%d)", low.R, high.R)
	}
	empty := img.RGBAAt(2, 0)
	if empty.R != 0 || empty.A != 0xFF {
		t.Errorf("empty column should be opaque black, got %v", empty)
	}
}

func TestCavesRendererHighlightsHollowColumns(t *testing.T) {
	const size = 8
	buf := primitives.NewBuffer(size)
	// Solid column at x=0, hollow shell at x=1.
	for y := 0; y < 4; y++ {
		buf.Set(size, 0, y, 0, primitives.BlockStone)
	}
	buf.Set(size, 1, 3, 0, primitives.BlockStone)

	img := NewCavesChunkRenderer().Render(buf, size)
	solid := img.RGBAAt(0, 0)
	hollow := img.RGBAAt(1, 0)
	if solid.R >= hollow.R {
		t.Errorf("solid column (%d) should be darker than hollow column (%d)", solid.R, hollow.R)
	}
}
