package scenery

import (
	"math"
	"testing"

	"github.com/pthm-cable/bugloop/components"
	"github.com/pthm-cable/bugloop/config"
	"github.com/pthm-cable/bugloop/mesh"
)

var testCfg = config.SceneryConfig{
	TileSize:    10,
	Cacti:       5,
	NoiseScale:  0.02,
	HeightScale: 1.5,
}

func TestGroundDimensions(t *testing.T) {
	g := NewGround(500, 320, 10, 0.02, 1.5, 1)

	if g.Cols != 50 || g.Rows != 32 {
		t.Errorf("expected 50x32 tiles, got %dx%d", g.Cols, g.Rows)
	}
	if len(g.heights) != 51*33 {
		t.Errorf("expected %d vertices, got %d", 51*33, len(g.heights))
	}

	corner := g.Vertex(50, 32)
	if corner.X != 500 || corner.Y != 320 {
		t.Errorf("expected far corner at (500, 320), got %v", corner)
	}
}

func TestGroundHeightsBounded(t *testing.T) {
	g := NewGround(500, 320, 10, 0.02, 1.5, 7)

	varied := false
	for _, h := range g.heights {
		if math.IsNaN(h) || math.Abs(h) > 1.5+1e-9 {
			t.Fatalf("height %f outside amplitude 1.5", h)
		}
		if h != g.heights[0] {
			varied = true
		}
	}
	if !varied {
		t.Error("expected noise to vary across the field")
	}
}

func TestHeightAtMatchesVertices(t *testing.T) {
	g := NewGround(100, 100, 10, 0.05, 2, 3)

	for _, ij := range [][2]int{{0, 0}, {3, 4}, {10, 10}} {
		v := g.Vertex(ij[0], ij[1])
		if got := g.HeightAt(v.X, v.Y); math.Abs(got-v.Z) > 1e-9 {
			t.Errorf("HeightAt(%f, %f) = %f, want vertex height %f", v.X, v.Y, got, v.Z)
		}
	}

	// Midpoint of a tile edge is the mean of its corners
	a, b := g.Vertex(2, 2), g.Vertex(3, 2)
	if got := g.HeightAt(25, 20); math.Abs(got-(a.Z+b.Z)/2) > 1e-9 {
		t.Errorf("edge midpoint height %f, want %f", got, (a.Z+b.Z)/2)
	}

	// Outside the field clamps to the edge
	if got, want := g.HeightAt(-50, 0), g.Vertex(0, 0).Z; got != want {
		t.Errorf("outside height %f, want edge height %f", got, want)
	}
}

func TestGroundDeterministic(t *testing.T) {
	a := NewGround(200, 200, 10, 0.02, 1.5, 99)
	b := NewGround(200, 200, 10, 0.02, 1.5, 99)
	for i := range a.heights {
		if a.heights[i] != b.heights[i] {
			t.Fatalf("same seed produced different heights at %d", i)
		}
	}
}

func TestCactiScattered(t *testing.T) {
	s := New(testCfg, 500, 320, 1)

	if s.PropCount() != 5 {
		t.Fatalf("expected 5 props, got %d", s.PropCount())
	}

	s.EachProp(func(pos *components.Position, prop *components.Prop) {
		if pos.X < 0 || pos.X > 500 || pos.Y < 0 || pos.Y > 320 {
			t.Errorf("prop at (%f, %f) outside arena", pos.X, pos.Y)
		}
		if prop.Kind != components.PropCactus || prop.Height != 5 {
			t.Errorf("unexpected prop %+v", prop)
		}
		if prop.Arms > 3 {
			t.Errorf("cactus has %d arms, want at most 3", prop.Arms)
		}
		if want := s.Ground.HeightAt(pos.X, pos.Y) + cactusSink; math.Abs(pos.Z-want) > 1e-9 {
			t.Errorf("cactus base z = %f, want %f below the ground at (%f, %f)", pos.Z, want, pos.X, pos.Y)
		}
	})
}

func TestDrawEmitsCactusLines(t *testing.T) {
	s := New(testCfg, 500, 320, 2)

	wantLines := 0
	s.EachProp(func(_ *components.Position, prop *components.Prop) {
		wantLines += 1 + 2*int(prop.Arms)
	})

	var batch mesh.Batch
	s.Draw(&batch)

	if len(batch.Lines) != wantLines {
		t.Errorf("expected %d lines, got %d", wantLines, len(batch.Lines))
	}
	for _, l := range batch.Lines {
		if l.Color != CactusColor {
			t.Errorf("expected cactus color, got %v", l.Color)
			break
		}
	}
}
