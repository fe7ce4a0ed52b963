package terrain

import "testing"

func TestHashKnownValues(t *testing.T) {
	// FNV-1a 32 reference values.
	cases := map[string]uint32{
		"":  2166136261,
		"a": 0xe40c292c,
	}
	for in, want := range cases {
		if got := Hash(in); got != want {
			t.Errorf("Hash(%q) = %#x, want %#x", in, got, want)
		}
	}
	if Hash("seed") == Hash("seeds") {
		t.Error("distinct seeds should hash apart")
	}
}

func TestMixOrderMatters(t *testing.T) {
	a := Mix(1, 2, 3)
	b := Mix(3, 2, 1)
	if a == b {
		t.Errorf("Mix should be order sensitive, got %#x for both orders", a)
	}
	if Mix(1, 2, 3) != a {
		t.Error("Mix is not deterministic")
	}
}

func TestMixDistinctChannels(t *testing.T) {
	base := Hash("world")
	s := Mix(base, 16, 0, 32, channelSurface)
	c := Mix(base, 16, 0, 32, channelCaves)
	if s == c {
		t.Error("surface and cave channels should decorrelate")
	}
}

func TestToUnitFloatRange(t *testing.T) {
	for _, v := range []uint32{0, 1, 1<<27 - 1, 1 << 27, 0xffffffff} {
		f := ToUnitFloat(v)
		if f < 0 || f >= 1 {
			t.Errorf("ToUnitFloat(%#x) = %v, want [0,1)", v, f)
		}
	}
	if ToUnitFloat(0) != 0 {
		t.Error("ToUnitFloat(0) should be 0")
	}
	if ToUnitFloat(1<<27) != 0 {
		t.Error("high bits should be masked off")
	}
}
