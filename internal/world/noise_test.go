package world

import (
	"math"
	"math/rand"
	"testing"
)

// TestHash3Deterministic verifies hash3 produces identical results for same inputs
func TestHash3Deterministic(t *testing.T) {
	first := hash3(10, 20, 30, 42)
	for i := 0; i < 100; i++ {
		if h := hash3(10, 20, 30, 42); h != first {
			t.Fatalf("hash3 not deterministic: %d != %d", h, first)
		}
	}
}

func TestHash3DifferentInputs(t *testing.T) {
	seed := int64(42)
	if hash3(1, 0, 0, seed) == hash3(2, 0, 0, seed) {
		t.Error("hash3 should differ for different X")
	}
	if hash3(0, 1, 0, seed) == hash3(0, 2, 0, seed) {
		t.Error("hash3 should differ for different Y")
	}
	if hash3(0, 0, 1, seed) == hash3(0, 0, 2, seed) {
		t.Error("hash3 should differ for different Z")
	}
	if hash3(1, 1, 1, 100) == hash3(1, 1, 1, 200) {
		t.Error("hash3 should differ for different seed")
	}
	if hash3(1, 2, 3, seed) == hash3(3, 2, 1, seed) {
		t.Error("hash3 should differ for axis swap")
	}
}

func TestPermutationIsShuffle(t *testing.T) {
	p := permutation(1234)
	var seen [256]bool
	for i := 0; i < 256; i++ {
		v := p[i]
		if v < 0 || v > 255 || seen[v] {
			t.Fatalf("permutation entry %d = %d is out of range or repeated", i, v)
		}
		seen[v] = true
		if p[i+256] != v {
			t.Fatalf("upper half not mirrored at %d", i)
		}
	}
	if p == permutation(1235) {
		t.Error("different seeds gave the same permutation")
	}
}

func TestPerlinZeroAtLatticePoints(t *testing.T) {
	p := permutation(7)
	for _, pt := range [][3]float64{{0, 0, 0}, {1, 2, 3}, {-4, 5, -6}} {
		if v := perlin3D(&p, pt[0], pt[1], pt[2]); v != 0 {
			t.Errorf("perlin3D%v = %f, want 0", pt, v)
		}
	}
}

func TestValueNoise3DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		if v := valueNoise3D(x, y, z, 42); v < 0 || v > 1 {
			t.Fatalf("valueNoise3D(%f, %f, %f) = %f, expected in [0,1]", x, y, z, v)
		}
	}
}

func TestSampleRangeAllKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, kind := range []NoiseKind{NoisePerlinFractal, NoisePerlin, NoiseValue, NoiseValueFractal} {
		cfg := DefaultNoiseConfig()
		cfg.Kind = kind
		s := NewSampler(cfg)
		for i := 0; i < 2000; i++ {
			x := rng.Int63n(4000) - 2000
			y := rng.Int63n(4000) - 2000
			z := rng.Int63n(4000) - 2000
			v := s.Sample(x, y, z)
			if v < -1 || v > 1 || math.IsNaN(float64(v)) {
				t.Fatalf("%v: Sample(%d, %d, %d) = %f, expected in [-1,1]", kind, x, y, z, v)
			}
		}
	}
}

// TestSampleDeterministic checks exact repeatability, independent of call order
// and of sampler instance.
func TestSampleDeterministic(t *testing.T) {
	pts := [][3]int64{{0, 0, 0}, {17, -3, 99}, {-1000, 12, 5}, {31, 31, 31}, {32, 0, 0}}

	a := NewSampler(DefaultNoiseConfig())
	first := make([]float32, len(pts))
	for i, p := range pts {
		first[i] = a.Sample(p[0], p[1], p[2])
	}

	b := NewSampler(DefaultNoiseConfig())
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		if v := b.Sample(p[0], p[1], p[2]); v != first[i] {
			t.Errorf("Sample%v = %v on second sampler, want %v", p, v, first[i])
		}
		if v := a.Sample(p[0], p[1], p[2]); v != first[i] {
			t.Errorf("Sample%v = %v on repeat, want %v", p, v, first[i])
		}
	}
}

func TestSampleSeedChangesField(t *testing.T) {
	cfg := DefaultNoiseConfig()
	a := NewSampler(cfg)
	cfg.Seed++
	b := NewSampler(cfg)
	diff := 0
	for x := int64(0); x < 64; x++ {
		if a.Sample(x, 3, 7) != b.Sample(x, 3, 7) {
			diff++
		}
	}
	if diff == 0 {
		t.Error("changing the seed did not change the field")
	}
}

// TestSampleContinuity verifies neighbouring voxels get close values at the
// default frequency.
func TestSampleContinuity(t *testing.T) {
	s := NewSampler(DefaultNoiseConfig())
	for x := int64(-100); x < 100; x++ {
		d := math.Abs(float64(s.Sample(x, 5, 9) - s.Sample(x+1, 5, 9)))
		if d > 0.5 {
			t.Fatalf("jump of %f between x=%d and x=%d", d, x, x+1)
		}
	}
}

func TestParseNoiseKind(t *testing.T) {
	for _, k := range []NoiseKind{NoisePerlinFractal, NoisePerlin, NoiseValue, NoiseValueFractal} {
		got, err := ParseNoiseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseNoiseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParseNoiseKind(" Perlin_Fractal "); err != nil || got != NoisePerlinFractal {
		t.Errorf("ParseNoiseKind should trim and ignore case, got %v, %v", got, err)
	}
	if _, err := ParseNoiseKind("simplex"); err == nil {
		t.Error("ParseNoiseKind accepted unknown kind")
	}
}
