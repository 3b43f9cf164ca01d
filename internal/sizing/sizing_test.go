package sizing

import (
	"testing"

	"github.com/stlalpha/boxes/internal/bxstring"
	"github.com/stlalpha/boxes/internal/shape"
)

func fixedEntry(w, h int) *shape.Entry {
	lines := make([]*bxstring.BXString, h)
	for i := range lines {
		lines[i] = bxstring.FromASCII("")
	}
	return &shape.Entry{Width: w, Height: h, Lines: lines}
}

func elasticEntry(w, h int) *shape.Entry {
	e := fixedEntry(w, h)
	e.Elastic = true
	return e
}

// singleElasticDesign has one elastic N/S edge and one elastic W/E edge,
// corners fixed at 1x1.
func singleElasticDesign() *shape.Design {
	d := &shape.Design{Name: "single"}
	d.Shapes[shape.NW] = fixedEntry(1, 1)
	d.Shapes[shape.NE] = fixedEntry(1, 1)
	d.Shapes[shape.SE] = fixedEntry(1, 1)
	d.Shapes[shape.SW] = fixedEntry(1, 1)
	d.Shapes[shape.N] = elasticEntry(1, 1)
	d.Shapes[shape.S] = elasticEntry(1, 1)
	d.Shapes[shape.E] = elasticEntry(1, 1)
	d.Shapes[shape.W] = elasticEntry(1, 1)
	return d
}

func TestHorizontalPrecalcSingleElasticReachesTarget(t *testing.T) {
	d := singleElasticDesign()
	h := HorizontalPrecalc(d, 10)
	if h.Width < 10 {
		t.Fatalf("Width = %d, want >= 10", h.Width)
	}
	if h.TopILTF != h.BotILTF {
		t.Errorf("TopILTF %v != BotILTF %v", h.TopILTF, h.BotILTF)
	}
}

func TestHorizontalPrecalcEmptySideMatchesTarget(t *testing.T) {
	d := &shape.Design{Name: "no-bottom"}
	d.Shapes[shape.NW] = fixedEntry(1, 1)
	d.Shapes[shape.NE] = fixedEntry(1, 1)
	d.Shapes[shape.N] = elasticEntry(1, 1)
	// Bottom side left entirely empty.
	h := HorizontalPrecalc(d, 8)
	if h.Width < 8 {
		t.Fatalf("Width = %d, want >= 8", h.Width)
	}
}

// threeEdgeDesign has all three top edges present: two outer elastics and
// a fixed middle.
func threeEdgeDesign() *shape.Design {
	d := &shape.Design{Name: "three"}
	d.Shapes[shape.NW] = fixedEntry(1, 1)
	d.Shapes[shape.NE] = fixedEntry(1, 1)
	d.Shapes[shape.SE] = fixedEntry(1, 1)
	d.Shapes[shape.SW] = fixedEntry(1, 1)
	d.Shapes[shape.NNW] = elasticEntry(2, 1)
	d.Shapes[shape.N] = fixedEntry(3, 1)
	d.Shapes[shape.NNE] = elasticEntry(2, 1)
	d.Shapes[shape.S] = elasticEntry(1, 1)
	d.Shapes[shape.W] = elasticEntry(1, 1)
	d.Shapes[shape.E] = elasticEntry(1, 1)
	return d
}

func TestHorizontalPrecalcThreeEdgeAlternatesOuterElastics(t *testing.T) {
	d := threeEdgeDesign()
	h := HorizontalPrecalc(d, 15)
	if h.TopILTF[0] == 0 || h.TopILTF[2] == 0 {
		t.Errorf("expected both outer elastics to have grown, got %v", h.TopILTF)
	}
	if h.TopILTF[1] != 3 {
		t.Errorf("fixed middle edge iltf = %d, want 3 (allocated exactly once)", h.TopILTF[1])
	}
	if h.Width < 15 {
		t.Fatalf("Width = %d, want >= 15", h.Width)
	}
}

func TestVerticalPrecalcConverges(t *testing.T) {
	d := singleElasticDesign()
	v := VerticalPrecalc(d, 6)
	if v.Height < 6 {
		t.Fatalf("Height = %d, want >= 6", v.Height)
	}
	if v.LeftILTF != v.RightILTF {
		t.Errorf("LeftILTF %v != RightILTF %v", v.LeftILTF, v.RightILTF)
	}
}
