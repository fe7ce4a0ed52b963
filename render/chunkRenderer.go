package render

import (
	"image"

	"github.com/maxsupermanhd/VoxelStream/primitives"
)

// ChunkRenderer turns a generated voxel buffer into a top-down
// preview image, one pixel per column.
type ChunkRenderer struct {
	Name   string
	Render func(buf primitives.Buffer, size int) *image.RGBA
}
