package world

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// NoiseKind selects the basis function of a Sampler.
type NoiseKind int

const (
	NoisePerlinFractal NoiseKind = iota
	NoisePerlin
	NoiseValue
	NoiseValueFractal
)

var noiseKindNames = [...]string{
	NoisePerlinFractal: "perlin_fractal",
	NoisePerlin:        "perlin",
	NoiseValue:         "value",
	NoiseValueFractal:  "value_fractal",
}

func (k NoiseKind) String() string {
	if k < 0 || int(k) >= len(noiseKindNames) {
		return fmt.Sprintf("NoiseKind(%d)", int(k))
	}
	return noiseKindNames[k]
}

// ParseNoiseKind maps a configuration name to a NoiseKind.
func ParseNoiseKind(s string) (NoiseKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range noiseKindNames {
		if n == name {
			return NoiseKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown noise kind %q", s)
}

func (k NoiseKind) fractal() bool {
	return k == NoisePerlinFractal || k == NoiseValueFractal
}

// NoiseConfig parameterises a Sampler.
type NoiseConfig struct {
	Seed       int64
	Kind       NoiseKind
	Frequency  float32
	Octaves    int
	Lacunarity float32
	Gain       float32
}

// DefaultNoiseConfig returns the default terrain noise.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:       1234,
		Kind:       NoisePerlinFractal,
		Frequency:  0.04,
		Octaves:    3,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

// Sampler is a deterministic scalar field over integer world coordinates.
// It is read-only after construction.
type Sampler struct {
	cfg    NoiseConfig
	perms  [][512]int // one table per octave (Perlin kinds only)
	bounds float64    // sum of octave amplitudes
}

// NewSampler builds a sampler for cfg. Non-fractal kinds ignore the octave settings.
func NewSampler(cfg NoiseConfig) *Sampler {
	octaves := 1
	if cfg.Kind.fractal() {
		octaves = max(cfg.Octaves, 1)
	}
	s := &Sampler{cfg: cfg}

	amp := 1.0
	for range octaves {
		s.bounds += amp
		amp *= float64(cfg.Gain)
	}

	if cfg.Kind == NoisePerlin || cfg.Kind == NoisePerlinFractal {
		s.perms = make([][512]int, octaves)
		for i := range s.perms {
			s.perms[i] = permutation(cfg.Seed + int64(i))
		}
	}
	return s
}

// Config returns the sampler's configuration.
func (s *Sampler) Config() NoiseConfig { return s.cfg }

// Sample evaluates the field at a world voxel coordinate. The result lies in [-1, 1].
func (s *Sampler) Sample(x, y, z int64) float32 {
	f := float64(s.cfg.Frequency)
	fx, fy, fz := float64(x)*f, float64(y)*f, float64(z)*f

	var v float64
	switch s.cfg.Kind {
	case NoisePerlin:
		v = perlin3D(&s.perms[0], fx, fy, fz)
	case NoiseValue:
		v = valueNoise3D(fx, fy, fz, s.cfg.Seed)*2 - 1
	default:
		v = s.fbm(fx, fy, fz)
	}
	return float32(clamp(v, -1, 1))
}

// fbm sums octaves and normalises by the total amplitude.
func (s *Sampler) fbm(x, y, z float64) float64 {
	octaves := max(s.cfg.Octaves, 1)
	lac := float64(s.cfg.Lacunarity)
	gain := float64(s.cfg.Gain)

	sum := 0.0
	amp := 1.0
	for i := range octaves {
		var n float64
		if s.cfg.Kind == NoiseValueFractal {
			n = valueNoise3D(x, y, z, s.cfg.Seed+int64(i*131))*2 - 1
		} else {
			n = perlin3D(&s.perms[i], x, y, z)
		}
		sum += n * amp
		amp *= gain
		x *= lac
		y *= lac
		z *= lac
	}
	if s.bounds == 0 {
		return 0
	}
	return sum / s.bounds
}

// permutation shuffles 0..255 with a seeded source and doubles the table so
// lookups can index up to 511 without wrapping.
func permutation(seed int64) [512]int {
	var p [512]int
	rnd := rand.New(rand.NewSource(seed))
	for i := range 256 {
		p[i] = i
	}
	for i := 255; i > 0; i-- {
		j := rnd.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := range 256 {
		p[i+256] = p[i]
	}
	return p
}

// Gradient directions: the 12 cube edges plus 4 repeats so hash&15 is uniform.
var (
	gradX = [16]float64{1, -1, 1, -1, 1, -1, 1, -1, 0, 0, 0, 0, 1, 0, -1, 0}
	gradY = [16]float64{1, 1, -1, -1, 0, 0, 0, 0, 1, -1, 1, -1, 1, -1, 1, -1}
	gradZ = [16]float64{0, 0, 0, 0, 1, 1, -1, -1, 1, 1, -1, -1, 0, 1, 0, -1}
)

func grad(hash int, x, y, z float64) float64 {
	i := hash & 15
	return gradX[i]*x + gradY[i]*y + gradZ[i]*z
}

func perlin3D(p *[512]int, x, y, z float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	xi := int(x0) & 255
	yi := int(y0) & 255
	zi := int(z0) & 255
	x -= x0
	y -= y0
	z -= z0
	u := fade(x)
	v := fade(y)
	w := fade(z)

	a := p[xi] + yi
	aa := p[a] + zi
	ab := p[a+1] + zi
	b := p[xi+1] + yi
	ba := p[b] + zi
	bb := p[b+1] + zi

	return lerp(
		lerp(
			lerp(grad(p[aa], x, y, z), grad(p[ba], x-1, y, z), u),
			lerp(grad(p[ab], x, y-1, z), grad(p[bb], x-1, y-1, z), u),
			v),
		lerp(
			lerp(grad(p[aa+1], x, y, z-1), grad(p[ba+1], x-1, y, z-1), u),
			lerp(grad(p[ab+1], x, y-1, z-1), grad(p[bb+1], x-1, y-1, z-1), u),
			v),
		w)
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func hash3(x, y, z int64, seed int64) uint64 {
	// SplitMix64 finaliser over a per-axis mix
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue3D(x, y, z int64, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise3D interpolates hashed lattice values; the result is in [0, 1].
func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	v000 := latticeValue3D(ix, iy, iz, seed)
	v100 := latticeValue3D(ix+1, iy, iz, seed)
	v010 := latticeValue3D(ix, iy+1, iz, seed)
	v110 := latticeValue3D(ix+1, iy+1, iz, seed)
	v001 := latticeValue3D(ix, iy, iz+1, seed)
	v101 := latticeValue3D(ix+1, iy, iz+1, seed)
	v011 := latticeValue3D(ix, iy+1, iz+1, seed)
	v111 := latticeValue3D(ix+1, iy+1, iz+1, seed)

	i0 := lerp(lerp(v000, v100, fx), lerp(v010, v110, fx), fy)
	i1 := lerp(lerp(v001, v101, fx), lerp(v011, v111, fx), fy)
	return lerp(i0, i1, fz)
}
