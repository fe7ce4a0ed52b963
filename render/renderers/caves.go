package renderers

import (
	"image"
	"image/color"

	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/render"
)

// NewCavesChunkRenderer shades each column by how much air sits below
// its surface, brighter red means more cave volume.
func NewCavesChunkRenderer() render.ChunkRenderer {
	return render.ChunkRenderer{
		Name: "caves",
		Render: func(buf primitives.Buffer, size int) *image.RGBA {
			img := image.NewRGBA(image.Rect(0, 0, size, size))
			for z := 0; z < size; z++ {
				for x := 0; x < size; x++ {
					top := -1
					for y := size - 1; y >= 0; y-- {
						if buf.At(size, x, y, z) != primitives.BlockAir {
							top = y
							break
						}
					}
					if top < 0 {
						img.SetRGBA(x, z, color.RGBA{A: 0xFF})
						continue
					}
					air := 0
					for y := 0; y < top; y++ {
						if buf.At(size, x, y, z) == primitives.BlockAir {
							air++
						}
					}
					v := uint8(0)
					if top > 0 {
						v = uint8(255 * air / top)
					}
					img.SetRGBA(x, z, color.RGBA{R: v, G: v / 4, B: v / 4, A: 0xFF})
				}
			}
			return img
		},
	}
}
