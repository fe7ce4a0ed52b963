package renderers

import (
	"image"
	"image/color"

	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/render"
)

// NewHeightmapChunkRenderer paints the top surface height as
// grayscale, black for fully carved columns.
func NewHeightmapChunkRenderer() render.ChunkRenderer {
	return render.ChunkRenderer{
		Name: "heightmap",
		Render: func(buf primitives.Buffer, size int) *image.RGBA {
			img := image.NewRGBA(image.Rect(0, 0, size, size))
			for z := 0; z < size; z++ {
				for x := 0; x < size; x++ {
					v := uint8(0)
					for y := size - 1; y >= 0; y-- {
						if buf.At(size, x, y, z) != primitives.BlockAir {
							v = uint8(255 * (y + 1) / size)
							break
						}
					}
					img.SetRGBA(x, z, color.RGBA{R: v, G: v, B: v, A: 0xFF})
				}
			}
			return img
		},
	}
}
