package terrain

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyOf serializes every field that influences generation output into
// a pipe-delimited cache key with a fixed field order. Params that
// differ in any field get different keys.
func KeyOf(p Params) string {
	p = p.Normalized()
	return strings.Join([]string{
		strconv.Itoa(p.Size),
		p.WorldSeed,
		p.BaseBlock.String(),
		strconv.Itoa(p.Coord.X),
		strconv.Itoa(p.Coord.Y),
		strconv.Itoa(p.Coord.Z),
		fmtFloat(p.SurfaceScale),
		fmtFloat(p.CavesScale),
		fmtFloat(p.CavesThreshold),
		strconv.Itoa(p.GrassDepth),
		strconv.Itoa(p.DirtDepth),
	}, "|")
}

// TagOf derives the weak content tag for a key. The size suffix keeps
// differently sized requests apart even if their textual keys were to
// hash alike.
func TagOf(key string, size int) string {
	return fmt.Sprintf("%08x-%d", Hash(key), size)
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
