package simplify

import (
	"regexp"
	"testing"
)

func TestRegisterDeduplicates(t *testing.T) {
	r := NewStyleRegistry()

	fill := FillList{{Type: "SOLID", Color: "#FF0000"}}
	id1 := r.Register(fill, "fill")
	id2 := r.Register(FillList{{Type: "SOLID", Color: "#FF0000"}}, "fill")

	if id1 != id2 {
		t.Errorf("structurally equal values got different ids: %q vs %q", id1, id2)
	}
	if r.Len() != 1 {
		t.Errorf("registry length = %d, want 1", r.Len())
	}

	id3 := r.Register(FillList{{Type: "SOLID", Color: "#00FF00"}}, "fill")
	if id3 == id1 {
		t.Errorf("distinct values share id %q", id3)
	}
	if r.Len() != 2 {
		t.Errorf("registry length = %d, want 2", r.Len())
	}
}

func TestRegisterKindScopesDeduplication(t *testing.T) {
	r := NewStyleRegistry()

	// Same underlying value registered under different kinds must produce
	// distinct entries: a fill list and a stroke color list are not
	// interchangeable references.
	fillID := r.Register(FillList{{Type: "SOLID", Color: "#112233"}}, "fill")
	strokeID := r.Register(FillList{{Type: "SOLID", Color: "#112233"}}, "stroke")

	if fillID == strokeID {
		t.Errorf("different kinds share id %q", fillID)
	}
}

func TestRegisterIDFormat(t *testing.T) {
	r := NewStyleRegistry()

	id := r.Register(FillList{{Type: "SOLID", Color: "#FF0000"}}, "fill")

	want := regexp.MustCompile(`^fill_[A-Z0-9]{6}$`)
	if !want.MatchString(id) {
		t.Errorf("id %q does not match %s", id, want)
	}
}

func TestRegisterReproducibleAcrossRegistries(t *testing.T) {
	values := []StyleValue{
		FillList{{Type: "SOLID", Color: "#FF0000"}},
		Layout{Mode: "row", Gap: "8px"},
		TextStyle{FontFamily: "Inter", FontSize: 14},
	}
	kinds := []string{"fill", "layout", "style"}

	r1 := NewStyleRegistry()
	r2 := NewStyleRegistry()
	for i := range values {
		id1 := r1.Register(values[i], kinds[i])
		id2 := r2.Register(values[i], kinds[i])
		if id1 != id2 {
			t.Errorf("registration %d: fresh registries disagree: %q vs %q", i, id1, id2)
		}
	}
}

func TestRegisterNamedBypassesDeduplication(t *testing.T) {
	r := NewStyleRegistry()

	style := TextStyle{FontFamily: "Inter", FontSize: 24}
	name := r.RegisterNamed("Heading/H1", style)
	if name != "Heading/H1" {
		t.Fatalf("RegisterNamed() = %q, want the given name back", name)
	}

	// An anonymous registration of the same value must not collapse into the
	// named entry.
	anon := r.Register(style, "style")
	if anon == name {
		t.Errorf("anonymous registration reused named id %q", anon)
	}

	// A later named registration overwrites.
	r.RegisterNamed("Heading/H1", TextStyle{FontFamily: "Inter", FontSize: 32})
	v, ok := r.Lookup("Heading/H1")
	if !ok {
		t.Fatal("named style not found after overwrite")
	}
	if ts := v.(TextStyle); ts.FontSize != 32 {
		t.Errorf("named style FontSize = %v, want 32 (overwritten)", ts.FontSize)
	}
}

func TestLookupMissing(t *testing.T) {
	r := NewStyleRegistry()
	if _, ok := r.Lookup("fill_NOPE42"); ok {
		t.Error("Lookup() reported a hit for an unknown id")
	}
}
