package primitives

import "fmt"

// BlockType is a voxel block code, one byte per voxel on the wire.
type BlockType uint8

const (
	BlockAir BlockType = iota
	BlockGrass
	BlockDirt
	BlockStone
	BlockFlowerRed
	BlockFlowerYellow
	BlockFlowerBlue
	BlockFlowerWhite
	BlockMarker // non-solid utility block, never generated
)

var blockNames = map[BlockType]string{
	BlockAir:          "air",
	BlockGrass:        "grass",
	BlockDirt:         "dirt",
	BlockStone:        "stone",
	BlockFlowerRed:    "flower_red",
	BlockFlowerYellow: "flower_yellow",
	BlockFlowerBlue:   "flower_blue",
	BlockFlowerWhite:  "flower_white",
	BlockMarker:       "marker",
}

func (b BlockType) String() string {
	n, ok := blockNames[b]
	if !ok {
		return fmt.Sprintf("unknown(%d)", uint8(b))
	}
	return n
}

// Known reports whether b is inside the closed block enumeration.
func Known(b BlockType) bool {
	_, ok := blockNames[b]
	return ok
}

// BlockByName resolves a block name to its code, defaulting to stone
// for unknown names so requests always yield terrain.
func BlockByName(name string) BlockType {
	for b, n := range blockNames {
		if n == name {
			return b
		}
	}
	return BlockStone
}

// ChunkCoord addresses a chunk in the chunk grid. Exact integer
// equality, usable as a map key.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("%dx %dy %dz", c.X, c.Y, c.Z)
}

// ColumnCoord addresses a chunk column in the streamed x/z grid.
type ColumnCoord struct {
	X, Z int
}

func (c ColumnCoord) String() string {
	return fmt.Sprintf("%dx %dz", c.X, c.Z)
}

// ChebyshevDist is the chunk grid distance used for view radius checks.
func ChebyshevDist(a, b ColumnCoord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// Buffer is a dense size³ voxel buffer, index x + y*size + z*size².
// Whoever holds a Buffer owns it, hand-offs transfer ownership.
type Buffer []byte

// NewBuffer allocates a zeroed (all air) buffer for the given chunk size.
func NewBuffer(size int) Buffer {
	return make(Buffer, size*size*size)
}

// Index computes the flat buffer index for local voxel coordinates,
// x fastest-varying.
func Index(size, x, y, z int) int {
	return x + y*size + z*size*size
}

// At returns the block at local coordinates.
func (b Buffer) At(size, x, y, z int) BlockType {
	return BlockType(b[Index(size, x, y, z)])
}

// Set places a block at local coordinates.
func (b Buffer) Set(size, x, y, z int, t BlockType) {
	b[Index(size, x, y, z)] = byte(t)
}
