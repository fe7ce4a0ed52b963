package terrain

import "testing"

func TestNoiseDeterministic(t *testing.T) {
	a := NewNoise(0.42)
	b := NewNoise(0.42)
	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*0.17, float64(i)*0.31, float64(i)*0.07
		if a.Sample3(x, y, z) != b.Sample3(x, y, z) {
			t.Fatalf("same seed diverged at sample %d", i)
		}
	}
}

func TestNoiseSeedChangesField(t *testing.T) {
	a := NewNoise(0.1)
	b := NewNoise(0.9)
	same := 0
	const n = 64
	for i := 0; i < n; i++ {
		x := float64(i) * 0.23
		if a.Sample3(x, 1.5, 2.5) == b.Sample3(x, 1.5, 2.5) {
			same++
		}
	}
	if same == n {
		t.Error("different seeds produced identical fields")
	}
}

func TestNoiseRange(t *testing.T) {
	n := NewNoise(0.77)
	for i := 0; i < 1000; i++ {
		v := n.Sample3(float64(i)*0.1, float64(i)*0.05, float64(i)*0.03)
		if v < 0 || v > 1 {
			t.Fatalf("sample %d out of [0,1]: %v", i, v)
		}
	}
}

func TestNoisePeriod256(t *testing.T) {
	n := NewNoise(0.5)
	// Exactly representable fractions so x+256 carries no rounding.
	for i := 0; i < 50; i++ {
		x, y, z := float64(i)*0.625, float64(i)*0.25, float64(i)*0.375
		if n.Sample3(x, y, z) != n.Sample3(x+256, y+512, z+256) {
			t.Fatalf("field not periodic at sample %d", i)
		}
	}
}

func TestSample2MatchesZeroPlane(t *testing.T) {
	n := NewNoise(0.33)
	if n.Sample2(3.7, 8.1) != n.Sample3(3.7, 8.1, 0) {
		t.Error("2D sampling should be the z=0 plane of the 3D field")
	}
}
