package scenery

import (
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"
)

// Ground is a height field of square tiles covering the arena.
// Heights are sampled at tile corners, so there are (Cols+1)*(Rows+1) vertices.
type Ground struct {
	TileSize   float64
	Cols, Rows int

	heights []float64
}

// NewGround samples simplex noise at every tile corner. noiseScale converts
// world units to noise space and heightScale sets the peak amplitude.
func NewGround(width, height, tileSize, noiseScale, heightScale float64, seed int64) *Ground {
	g := &Ground{
		TileSize: tileSize,
		Cols:     int(width / tileSize),
		Rows:     int(height / tileSize),
	}

	noise := opensimplex.New(seed)
	g.heights = make([]float64, (g.Cols+1)*(g.Rows+1))
	for j := 0; j <= g.Rows; j++ {
		for i := 0; i <= g.Cols; i++ {
			x, y := float64(i)*tileSize, float64(j)*tileSize
			g.heights[j*(g.Cols+1)+i] = heightScale * noise.Eval2(x*noiseScale, y*noiseScale)
		}
	}
	return g
}

// Vertex returns the world position of tile corner (i, j).
func (g *Ground) Vertex(i, j int) r3.Vec {
	return r3.Vec{
		X: float64(i) * g.TileSize,
		Y: float64(j) * g.TileSize,
		Z: g.heights[j*(g.Cols+1)+i],
	}
}

// HeightAt bilinearly interpolates the ground height at (x, y).
// Points outside the field take the height of the nearest edge.
func (g *Ground) HeightAt(x, y float64) float64 {
	fx := clamp(x/g.TileSize, 0, float64(g.Cols))
	fy := clamp(y/g.TileSize, 0, float64(g.Rows))

	i0, j0 := int(math.Floor(fx)), int(math.Floor(fy))
	i1, j1 := min(i0+1, g.Cols), min(j0+1, g.Rows)
	tx, ty := fx-float64(i0), fy-float64(j0)

	h00 := g.heights[j0*(g.Cols+1)+i0]
	h10 := g.heights[j0*(g.Cols+1)+i1]
	h01 := g.heights[j1*(g.Cols+1)+i0]
	h11 := g.heights[j1*(g.Cols+1)+i1]

	bottom := h00 + (h10-h00)*tx
	top := h01 + (h11-h01)*tx
	return bottom + (top-bottom)*ty
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
