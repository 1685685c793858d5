package zarr

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestDTypeSize(t *testing.T) {
	tests := []struct {
		dtype string
		want  int
	}{
		{"|b1", 1},
		{"|i1", 1},
		{"<i2", 2},
		{"<i4", 4},
		{"<i8", 8},
		{"<f4", 4},
		{"<f8", 8},
		{"<U5", 20},
	}
	for _, tt := range tests {
		t.Run(tt.dtype, func(t *testing.T) {
			got, err := dtypeSize(tt.dtype)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("dtypeSize(%q) = %d, want %d", tt.dtype, got, tt.want)
			}
		})
	}
}

func TestValidDTypeRejectsUnknown(t *testing.T) {
	for _, dt := range []string{"", "f8", ">f8", "<c16", "|S4"} {
		if err := validDType(dt); err == nil {
			t.Errorf("validDType(%q) accepted an unsupported dtype", dt)
		}
	}
}

func TestValueCodecRoundTrip(t *testing.T) {
	vals := []float64{0, 1, -2, 3.5, 100000}
	for _, dt := range []string{"<f4", "<f8", "<i4", "<i8"} {
		t.Run(dt, func(t *testing.T) {
			if dt[1] == 'i' {
				vals = []float64{0, 1, -2, 4, 100000}
			}
			raw, err := encodeValues(dt, vals)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := decodeValues(dt, raw, len(vals))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			for i := range vals {
				if got[i] != vals[i] {
					t.Errorf("%s element %d = %g, want %g", dt, i, got[i], vals[i])
				}
			}
		})
	}
}

func TestStringCodecRoundTrip(t *testing.T) {
	strs := []string{"ACCESS-CM2", "x", "", "ssp585"}
	dt, raw := encodeStrings(strs)
	if dt != "<U10" {
		t.Errorf("dtype = %q, want <U10", dt)
	}
	got, err := decodeStrings(dt, raw, len(strs))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range strs {
		if got[i] != strs[i] {
			t.Errorf("element %d = %q, want %q", i, got[i], strs[i])
		}
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	ds := NewDataset()
	data := zerosDense([]int{2, 3})
	copy(data.Elements, []float64{1, 2, 3, 4, 5, 6})
	ds.Add("indicator", &Variable{
		Dims:   []string{"latitude", "longitude"},
		Values: data,
		DType:  "<f4",
		Attrs:  map[string]any{"long_name": "an indicator", "units": "days"},
	})
	lat := zerosDense([]int{2})
	copy(lat.Elements, []float64{-45, 45})
	ds.Add("latitude", &Variable{Dims: []string{"latitude"}, Values: lat})
	lon := zerosDense([]int{3})
	copy(lon.Elements, []float64{0, 10, 20})
	ds.Add("longitude", &Variable{Dims: []string{"longitude"}, Values: lon})
	ds.Add("gcm", &Variable{Dims: []string{"gcm"}, Strings: []string{"modelA", "modelB"}})
	ds.Add("time", &Variable{Dims: []string{"time"}, Times: []time.Time{
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC),
	}})

	path := filepath.Join(t.TempDir(), "cube.zarr")
	if err := WriteDataset(path, ds); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}

	got, err := OpenDataset(path)
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}

	data2 := got.Vars["indicator"]
	if data2 == nil {
		t.Fatal("indicator variable missing after round trip")
	}
	if data2.DType != "<f4" {
		t.Errorf("dtype = %q, want <f4", data2.DType)
	}
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if data2.Values.Elements[i] != want {
			t.Errorf("element %d = %g, want %g", i, data2.Values.Elements[i], want)
		}
	}
	if got, _ := data2.Attrs["long_name"].(string); got != "an indicator" {
		t.Errorf("long_name = %q, want %q", got, "an indicator")
	}
	if len(data2.Dims) != 2 || data2.Dims[0] != "latitude" || data2.Dims[1] != "longitude" {
		t.Errorf("dims = %v, want [latitude longitude]", data2.Dims)
	}

	gcm := got.Vars["gcm"]
	if gcm == nil || len(gcm.Strings) != 2 || gcm.Strings[1] != "modelB" {
		t.Errorf("gcm = %+v, want strings [modelA modelB]", gcm)
	}

	tv := got.Vars["time"]
	if tv == nil || len(tv.Times) != 2 {
		t.Fatalf("time = %+v, want 2 values", tv)
	}
	if tv.Times[0].Year() != 2030 || tv.Times[1].Year() != 2031 {
		t.Errorf("times = %v, want 2030 and 2031", tv.Times)
	}

	if want := []string{"gcm", "indicator"}; len(got.DataVars()) != 1 {
		t.Errorf("DataVars() = %v, want only the indicator (coordinates %v excluded)", got.DataVars(), want[:1])
	}
}

func TestTimeRoundTripFarFuture(t *testing.T) {
	want := []time.Time{
		time.Date(2262, 4, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	ds := NewDataset()
	ds.Add("time", &Variable{Dims: []string{"time"}, Times: want})

	path := filepath.Join(t.TempDir(), "far.zarr")
	if err := WriteDataset(path, ds); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	got, err := OpenDataset(path)
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}

	tv := got.Vars["time"]
	if tv == nil || len(tv.Times) != len(want) {
		t.Fatalf("time = %+v, want %d values", tv, len(want))
	}
	for i := range want {
		if !tv.Times[i].Equal(want[i]) {
			t.Errorf("time %d = %v, want %v", i, tv.Times[i], want[i])
		}
	}
}

func TestDataVars(t *testing.T) {
	ds := NewDataset()
	ds.Add("x", &Variable{Dims: []string{"x"}})
	ds.Add("a", &Variable{Dims: []string{"x"}})
	ds.Add("b", &Variable{Dims: []string{"x"}})

	dv := ds.DataVars()
	if len(dv) != 2 || dv[0] != "a" || dv[1] != "b" {
		t.Errorf("DataVars() = %v, want [a b]", dv)
	}
}

func TestConsolidatedMetadata(t *testing.T) {
	ds := NewDataset()
	v := zerosDense([]int{2})
	ds.Add("a", &Variable{Dims: []string{"a"}, Values: v})

	path := filepath.Join(t.TempDir(), "store.zarr")
	if err := WriteDataset(path, ds); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(path, ".zmetadata"))
	if err != nil {
		t.Fatalf("consolidated metadata missing: %v", err)
	}
	var doc struct {
		Metadata map[string]json.RawMessage `json:"metadata"`
		Format   int                        `json:"zarr_consolidated_format"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("parse .zmetadata: %v", err)
	}
	if doc.Format != 1 {
		t.Errorf("zarr_consolidated_format = %d, want 1", doc.Format)
	}
	for _, key := range []string{".zgroup", "a/.zarray", "a/.zattrs"} {
		if _, ok := doc.Metadata[key]; !ok {
			t.Errorf("consolidated metadata is missing %q", key)
		}
	}
}

func TestReadArrayChunked(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "arr")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	meta := `{"chunks": [3], "compressor": null, "dtype": "<f8", "fill_value": 0.0,
	          "filters": null, "order": "C", "shape": [5], "zarr_format": 2}`
	if err := os.WriteFile(filepath.Join(dir, ".zarray"), []byte(meta), 0644); err != nil {
		t.Fatal(err)
	}
	chunk0, err := encodeValues("<f8", []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	// Overhanging chunk: two real elements plus padding.
	chunk1, err := encodeValues("<f8", []float64{4, 5, 99})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "0"), chunk0, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "1"), chunk1, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenStore(root)
	if err != nil {
		t.Fatal(err)
	}
	a, err := s.ReadArray("arr")
	if err != nil {
		t.Fatalf("ReadArray: %v", err)
	}
	for i, want := range []float64{1, 2, 3, 4, 5} {
		if a.Data.Elements[i] != want {
			t.Errorf("element %d = %g, want %g", i, a.Data.Elements[i], want)
		}
	}
}

func TestReadArrayRejectsBlosc(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "arr")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	meta := `{"chunks": [1], "compressor": {"id": "blosc"}, "dtype": "<f8",
	          "fill_value": 0.0, "filters": null, "order": "C", "shape": [1], "zarr_format": 2}`
	if err := os.WriteFile(filepath.Join(dir, ".zarray"), []byte(meta), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "0"), []byte{0, 1, 2}, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenStore(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadArray("arr"); err == nil {
		t.Fatal("expected an error for a blosc-compressed array")
	}
}

func TestDropLeading(t *testing.T) {
	a := &Array{
		Key:  "x",
		Meta: &ArrayMeta{Shape: []int{1, 2, 2}, DType: "<f8", ZarrFormat: 2},
		Attrs: map[string]any{
			DimensionsAttr: []string{"index", "latitude", "longitude"},
		},
		Data: zerosDense([]int{1, 2, 2}),
	}
	copy(a.Data.Elements, []float64{1, 2, 3, 4})

	b, err := a.DropLeading()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Data.Shape) != 2 || b.Data.Shape[0] != 2 || b.Data.Shape[1] != 2 {
		t.Errorf("shape = %v, want [2 2]", b.Data.Shape)
	}
	dims := b.Dims()
	if len(dims) != 2 || dims[0] != "latitude" || dims[1] != "longitude" {
		t.Errorf("dims = %v, want [latitude longitude]", dims)
	}
	if b.Data.Get(1, 1) != 4 {
		t.Errorf("element (1,1) = %g, want 4", b.Data.Get(1, 1))
	}
}

func TestStoreKeysDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b/file", "a/file", "c"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	s, err := OpenStore(root)
	if err != nil {
		t.Fatal(err)
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a/file", "b/file", "c"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
