package renderers

import (
	"image"
	"image/color"

	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/render"
)

var defaultBlockColors = map[primitives.BlockType]color.RGBA{
	primitives.BlockGrass:        {R: 0x91, G: 0xBD, B: 0x59, A: 0xFF},
	primitives.BlockDirt:         {R: 0x8B, G: 0x5A, B: 0x2B, A: 0xFF},
	primitives.BlockStone:        {R: 0x7D, G: 0x7D, B: 0x7D, A: 0xFF},
	primitives.BlockFlowerRed:    {R: 0xD3, G: 0x3E, B: 0x3E, A: 0xFF},
	primitives.BlockFlowerYellow: {R: 0xE5, G: 0xD9, B: 0x3D, A: 0xFF},
	primitives.BlockFlowerBlue:   {R: 0x4D, G: 0x6B, B: 0xE2, A: 0xFF},
	primitives.BlockFlowerWhite:  {R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
	primitives.BlockMarker:       {R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF},
}

// NewTerrainChunkRenderer colors each column by its topmost non-air
// block, darkened with depth so relief stays readable.
func NewTerrainChunkRenderer(colors map[primitives.BlockType]color.RGBA) render.ChunkRenderer {
	return render.ChunkRenderer{
		Name: "terrain",
		Render: func(buf primitives.Buffer, size int) *image.RGBA {
			img := image.NewRGBA(image.Rect(0, 0, size, size))
			for z := 0; z < size; z++ {
				for x := 0; x < size; x++ {
					for y := size - 1; y >= 0; y-- {
						b := buf.At(size, x, y, z)
						if b == primitives.BlockAir {
							continue
						}
						c, ok := colors[b]
						if !ok {
							c = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}
						}
						shade := uint32(128 + 127*y/(size-1))
						c.R = uint8(uint32(c.R) * shade / 255)
						c.G = uint8(uint32(c.G) * shade / 255)
						c.B = uint8(uint32(c.B) * shade / 255)
						img.SetRGBA(x, z, c)
						break
					}
				}
			}
			return img
		},
	}
}
