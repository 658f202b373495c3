// Package preview renders a top-down view of generated terrain for debugging
// streaming without a GPU.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"voxelstream/internal/world"

	"golang.org/x/image/draw"
)

var (
	// ErrEmpty is returned when none of the requested chunks is registered.
	ErrEmpty = errors.New("preview: no chunks to draw")
	// ErrTooLarge is returned when the chunks span more than MaxColumns columns.
	ErrTooLarge = errors.New("preview: area too large")
)

// MaxColumns caps the heightmap allocation.
const MaxColumns = 1 << 22

// Heightmap holds the highest solid voxel of every world column covered by
// the drawn chunks. Columns without solid voxels hold NoGround.
type Heightmap struct {
	MinX, MinZ   int64 // world coordinate of column (0, 0)
	Width, Depth int
	Floor, Ceil  int64 // world Y range covered by the drawn chunks
	Heights      []int64
}

// NoGround marks a column with no solid voxel.
const NoGround = math.MinInt64

// At returns the top solid Y of column (x, z), relative to MinX/MinZ.
func (h *Heightmap) At(x, z int) int64 {
	return h.Heights[x+z*h.Width]
}

// Build scans the chunks at coords, usually the loader's loaded set, with
// edge length size. Coordinates missing from store are skipped.
func Build(store *world.ChunkStore, coords []world.ChunkCoord, size int) (*Heightmap, error) {
	var present []world.ChunkCoord
	for _, c := range coords {
		if store.Has(c) {
			present = append(present, c)
		}
	}
	coords = present
	if len(coords) == 0 {
		return nil, ErrEmpty
	}
	lo, hi := coords[0], coords[0]
	for _, c := range coords {
		lo = world.ChunkCoord{X: min(lo.X, c.X), Y: min(lo.Y, c.Y), Z: min(lo.Z, c.Z)}
		hi = world.ChunkCoord{X: max(hi.X, c.X), Y: max(hi.Y, c.Y), Z: max(hi.Z, c.Z)}
	}

	minX, floor, minZ := lo.Origin(size)
	maxX, ceil, maxZ := hi.Add(world.ChunkCoord{X: 1, Y: 1, Z: 1}).Origin(size)
	if cols := (maxX - minX) * (maxZ - minZ); cols > MaxColumns {
		return nil, fmt.Errorf("%w: %d columns", ErrTooLarge, cols)
	}
	hm := &Heightmap{
		MinX:  minX,
		MinZ:  minZ,
		Width: int(maxX - minX),
		Depth: int(maxZ - minZ),
		Floor: floor,
		Ceil:  ceil,
	}
	hm.Heights = make([]int64, hm.Width*hm.Depth)
	for i := range hm.Heights {
		hm.Heights[i] = NoGround
	}

	for _, coord := range coords {
		chunk, _ := store.Get(coord)
		if chunk.SolidCount() == 0 {
			continue
		}
		ox, oy, oz := coord.Origin(size)
		for z := range size {
			for x := range size {
				i := int(ox-minX) + x + (int(oz-minZ)+z)*hm.Width
				for y := size - 1; y >= 0; y-- {
					if !chunk.Solid(x, y, z) {
						continue
					}
					if top := oy + int64(y); top > hm.Heights[i] {
						hm.Heights[i] = top
					}
					break
				}
			}
		}
	}
	return hm, nil
}

// Image maps heights to gray levels: Floor is black, Ceil is white.
// Image row 0 is the smallest Z.
func (h *Heightmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.Width, h.Depth))
	span := float64(h.Ceil - h.Floor)
	for z := range h.Depth {
		for x := range h.Width {
			v := h.At(x, z)
			if v == NoGround {
				continue
			}
			g := float64(v-h.Floor+1) / span * 255
			img.SetGray(x, z, color.Gray{Y: uint8(math.Max(0, math.Min(255, g)))})
		}
	}
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG renders the heightmap of coords, scaled by factor, to path.
func SavePNG(path string, store *world.ChunkStore, coords []world.ChunkCoord, size, factor int) error {
	hm, err := Build(store, coords, size)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, Scale(hm.Image(), factor)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
