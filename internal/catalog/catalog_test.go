package catalog

import (
	"testing"

	"github.com/stlalpha/boxes/internal/shape"
)

func TestDefaultDesignsValidate(t *testing.T) {
	for _, d := range Default() {
		if err := d.Validate(); err != nil {
			t.Errorf("design %q failed validation: %v", d.Name, err)
		}
	}
}

func TestDefaultOrderIsStable(t *testing.T) {
	want := []string{"classic", "simple", "stone"}
	got := Default()
	if len(got) != len(want) {
		t.Fatalf("got %d designs, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Default()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestClassicMatchesAlias(t *testing.T) {
	d := classicDesign()
	if !d.MatchesName("c") {
		t.Errorf("classicDesign should match alias %q", "c")
	}
	if !d.MatchesName("CLASSIC") {
		t.Errorf("classicDesign should match its own name case-insensitively")
	}
}

func TestStoneMatchesAlias(t *testing.T) {
	d := stoneDesign()
	if !d.MatchesName("block") {
		t.Errorf("stoneDesign should match alias %q", "block")
	}
}

func TestAdHocValidates(t *testing.T) {
	d := AdHoc("#")
	if err := d.Validate(); err != nil {
		t.Errorf("AdHoc(\"#\") failed validation: %v", err)
	}
	if d.Shapes[shape.NW] == d.Shapes[shape.NE] {
		t.Errorf("AdHoc corners should be independent clones, not the same pointer")
	}
}

func TestAdHocMultiCharShape(t *testing.T) {
	d := AdHoc("#=")
	if err := d.Validate(); err != nil {
		t.Fatalf("AdHoc(\"#=\") failed validation: %v", err)
	}
	if got := d.Shapes[shape.NW].Width; got != 2 {
		t.Errorf("NW width = %d, want 2", got)
	}
	if got := d.Shapes[shape.W].Width; got != 2 {
		t.Errorf("W width = %d, want 2", got)
	}
}

func TestAdHocEmptyString(t *testing.T) {
	d := AdHoc("")
	if err := d.Validate(); err != nil {
		t.Errorf("AdHoc(\"\") failed validation: %v", err)
	}
}
