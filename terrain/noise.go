package terrain

import "math"

// Noise is a seeded gradient noise sampler, periodic with period 256
// along every axis. Output is continuous and in [0,1].
type Noise struct {
	perm [512]int
}

// NewNoise builds a sampler from a seed in [0,1). The permutation
// shuffle reuses the same scalar seed for every swap, which makes it a
// poor shuffle but a perfectly deterministic one, and determinism is
// the only property the terrain pipeline needs.
func NewNoise(seed float64) *Noise {
	n := &Noise{}
	var base [256]int
	for i := range base {
		base[i] = i
	}
	for i := 255; i > 0; i-- {
		j := int(seed * float64(i+1))
		base[i], base[j] = base[j], base[i]
	}
	for i := 0; i < 256; i++ {
		n.perm[i] = base[i]
		n.perm[i+256] = base[i]
	}
	return n
}

// fade is the quintic 6t⁵-15t⁴+10t³ easing curve.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad picks one of 16 gradient directions from the low hash bits and
// dots it with the corner-to-point vector.
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Sample2 samples the field on the z=0 plane.
func (n *Noise) Sample2(x, y float64) float64 {
	return n.Sample3(x, y, 0)
}

// Sample3 samples the field at (x,y,z), returning a value in [0,1].
func (n *Noise) Sample3(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	aaa := n.perm[n.perm[n.perm[xi]+yi]+zi]
	aba := n.perm[n.perm[n.perm[xi]+yi+1]+zi]
	aab := n.perm[n.perm[n.perm[xi]+yi]+zi+1]
	abb := n.perm[n.perm[n.perm[xi]+yi+1]+zi+1]
	baa := n.perm[n.perm[n.perm[xi+1]+yi]+zi]
	bba := n.perm[n.perm[n.perm[xi+1]+yi+1]+zi]
	bab := n.perm[n.perm[n.perm[xi+1]+yi]+zi+1]
	bbb := n.perm[n.perm[n.perm[xi+1]+yi+1]+zi+1]

	x1 := lerp(u, grad(aaa, xf, yf, zf), grad(baa, xf-1, yf, zf))
	x2 := lerp(u, grad(aba, xf, yf-1, zf), grad(bba, xf-1, yf-1, zf))
	y1 := lerp(v, x1, x2)

	x1 = lerp(u, grad(aab, xf, yf, zf-1), grad(bab, xf-1, yf, zf-1))
	x2 = lerp(u, grad(abb, xf, yf-1, zf-1), grad(bbb, xf-1, yf-1, zf-1))
	y2 := lerp(v, x1, x2)

	return lerp(w, y1, y2)*0.5 + 0.5
}
