package terrain

// Hash is 32-bit FNV-1a over the UTF-8 bytes of text.
func Hash(text string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(text); i++ {
		h ^= uint32(text[i])
		h *= 16777619
	}
	return h
}

// fmix32 is the MurmurHash3 32-bit finalizer.
func fmix32(v uint32) uint32 {
	v ^= v >> 16
	v *= 0x85ebca6b
	v ^= v >> 13
	v *= 0xc2b2ae35
	v ^= v >> 16
	return v
}

// Mix folds any number of u32 inputs into one. Every input is salted
// with its position before finalizing, so argument order matters.
// Chunk seed derivation always passes
// (baseHash, originX, originY, originZ, channel).
func Mix(vs ...uint32) uint32 {
	var acc uint32
	for i, v := range vs {
		acc ^= fmix32(v ^ uint32(i+1)*0x9e3779b1)
	}
	return acc
}

// ToUnitFloat maps a u32 onto [0,1), keeping 27 bits so the noise
// permutation shuffle sees enough mantissa.
func ToUnitFloat(v uint32) float64 {
	return float64(v&((1<<27)-1)) / (1 << 27)
}
