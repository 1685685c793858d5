package indicators

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinRegistry(t *testing.T) {
	r := Builtin()

	names := r.Names()
	if len(names) != 2 || names[0] != "days_tas_above" || names[1] != "degree_days" {
		t.Fatalf("Names() = %v, want [days_tas_above degree_days]", names)
	}

	d, ok := r.Get("days_tas_above")
	if !ok {
		t.Fatal("days_tas_above not registered")
	}
	if d.Title != "Days TAS Above" {
		t.Errorf("title = %q, want %q", d.Title, "Days TAS Above")
	}
	ax, ok := d.Axes["temperature"]
	if !ok {
		t.Fatal("temperature axis attributes missing")
	}
	if ax.Units != "Degrees Celsius" {
		t.Errorf("temperature units = %q, want %q", ax.Units, "Degrees Celsius")
	}
	if _, ok := d.Axes["days_tas_above"]; !ok {
		t.Error("data variable attributes missing")
	}

	if _, ok := r.Get("unknown"); ok {
		t.Error("Get returned a descriptor for an unregistered indicator")
	}
}

func TestAxisAttrsMap(t *testing.T) {
	m := AxisAttrs{LongName: "Latitude", Units: "Degrees North"}.Map()
	if m["long_name"] != "Latitude" || m["units"] != "Degrees North" {
		t.Errorf("Map() = %v", m)
	}
	if m := (AxisAttrs{LongName: "only name"}).Map(); len(m) != 1 {
		t.Errorf("empty units should be omitted, got %v", m)
	}
}

func TestLoadFile(t *testing.T) {
	doc := `indicators:
  - name: heat_index
    title: Heat Index
    description: A custom indicator.
    axes:
      heat_index:
        long_name: Heat index
        units: Days per year
      temperature:
        long_name: Threshold temperature
        units: Degrees Celsius
`
	path := filepath.Join(t.TempDir(), "indicators.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	r := Builtin()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	d, ok := r.Get("heat_index")
	if !ok {
		t.Fatal("loaded indicator not registered")
	}
	if d.Title != "Heat Index" {
		t.Errorf("title = %q, want %q", d.Title, "Heat Index")
	}
	if d.Axes["temperature"].Units != "Degrees Celsius" {
		t.Errorf("axis attributes not loaded: %+v", d.Axes)
	}
	// Built-ins are still present.
	if _, ok := r.Get("degree_days"); !ok {
		t.Error("loading a file dropped built-in descriptors")
	}
}

func TestLoadFileErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("indicators: [{title: no name}]"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.LoadFile(path); err == nil {
		t.Error("expected an error for a descriptor without a name")
	}
}
