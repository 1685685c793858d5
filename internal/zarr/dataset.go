package zarr

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ctessum/sparse"
	json "github.com/goccy/go-json"

	"github.com/eodatahub/hazcube/internal/atomicfile"
)

// timeUnits is the encoding used for time coordinate variables.
const timeUnits = "days since 1970-01-01"

var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Variable is one named array within a Dataset. Exactly one of Values,
// Strings, or Times holds the payload.
type Variable struct {
	Dims    []string
	Values  *sparse.DenseArray
	Strings []string
	Times   []time.Time
	DType   string // numeric target dtype; defaults to "<f8"
	Attrs   map[string]any
}

// Len returns the variable's total element count.
func (v *Variable) Len() int {
	switch {
	case v.Strings != nil:
		return len(v.Strings)
	case v.Times != nil:
		return len(v.Times)
	default:
		n := 1
		for _, d := range v.Values.Shape {
			n *= d
		}
		return n
	}
}

func (v *Variable) shape() []int {
	switch {
	case v.Strings != nil:
		return []int{len(v.Strings)}
	case v.Times != nil:
		return []int{len(v.Times)}
	default:
		return v.Values.Shape
	}
}

// Dataset is an ordered collection of variables sharing dimensions, the
// in-memory form of one output cube store.
type Dataset struct {
	Names []string
	Vars  map[string]*Variable
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{Vars: make(map[string]*Variable)}
}

// Add appends a variable, keeping insertion order.
func (d *Dataset) Add(name string, v *Variable) {
	if _, ok := d.Vars[name]; !ok {
		d.Names = append(d.Names, name)
	}
	d.Vars[name] = v
}

// DataVars returns the names of non-coordinate variables. A coordinate
// variable is one whose single dimension is itself.
func (d *Dataset) DataVars() []string {
	var out []string
	for _, name := range d.Names {
		v := d.Vars[name]
		if len(v.Dims) == 1 && v.Dims[0] == name {
			continue
		}
		out = append(out, name)
	}
	return out
}

// WriteArray writes one variable as an array group under root/key: a single
// whole-array zlib chunk plus .zarray and .zattrs documents.
func WriteArray(root, key string, v *Variable) error {
	dir := filepath.Join(root, filepath.FromSlash(key))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create array directory: %w", err)
	}

	var (
		dt        string
		payload   []byte
		fillValue any
		err       error
	)
	attrs := make(map[string]any, len(v.Attrs)+3)
	for k, av := range v.Attrs {
		attrs[k] = av
	}
	switch {
	case v.Strings != nil:
		dt, payload = encodeStrings(v.Strings)
		fillValue = ""
	case v.Times != nil:
		dt = "<i8"
		days := make([]float64, len(v.Times))
		for i, t := range v.Times {
			// Not t.Sub(epoch): Duration overflows past the year 2262.
			days[i] = float64(t.Unix() / 86400)
		}
		payload, err = encodeValues(dt, days)
		fillValue = 0
		attrs["units"] = timeUnits
		attrs["calendar"] = "proleptic_gregorian"
	default:
		dt = v.DType
		if dt == "" {
			dt = "<f8"
		}
		if err := validDType(dt); err != nil {
			return err
		}
		payload, err = encodeValues(dt, v.Values.Elements)
		if strings.HasPrefix(dt, "<f") {
			fillValue = 0.0
		} else {
			fillValue = 0
		}
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	compressor := &Compressor{ID: "zlib", Level: 1}
	compressed, err := compress(compressor, payload)
	if err != nil {
		return fmt.Errorf("compress %s: %w", key, err)
	}

	shape := v.shape()
	meta := &ArrayMeta{
		Chunks:     shape,
		Compressor: compressor,
		DType:      dt,
		FillValue:  fillValue,
		Order:      "C",
		Shape:      shape,
		ZarrFormat: 2,
	}
	attrs[DimensionsAttr] = v.Dims

	chunk := chunkKey(make([]int, len(shape)), meta.separator())
	if err := os.WriteFile(filepath.Join(dir, chunk), compressed, 0644); err != nil {
		return fmt.Errorf("write chunk for %s: %w", key, err)
	}
	if err := writeJSON(filepath.Join(dir, ".zarray"), meta); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, ".zattrs"), attrs)
}

// WriteDataset persists ds as a new store at path, including consolidated
// metadata. The destination must not already contain a store.
func WriteDataset(path string, ds *Dataset) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create store %s: %w", path, err)
	}
	if err := writeJSON(filepath.Join(path, ".zgroup"), &GroupMeta{ZarrFormat: 2}); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(path, ".zattrs"), map[string]any{}); err != nil {
		return err
	}
	for _, name := range ds.Names {
		if err := WriteArray(path, name, ds.Vars[name]); err != nil {
			return fmt.Errorf("write variable %s: %w", name, err)
		}
	}
	return Consolidate(path)
}

// Consolidate gathers every metadata document in the store into a single
// .zmetadata key, the way zarr's consolidated metadata works.
func Consolidate(path string) error {
	s, err := OpenStore(path)
	if err != nil {
		return err
	}
	keys, err := s.Keys()
	if err != nil {
		return err
	}
	metadata := make(map[string]json.RawMessage)
	for _, key := range keys {
		base := key[strings.LastIndex(key, "/")+1:]
		switch base {
		case ".zarray", ".zattrs", ".zgroup":
			raw, err := s.readBytes(key)
			if err != nil {
				return err
			}
			metadata[key] = json.RawMessage(raw)
		}
	}
	doc := map[string]any{
		"metadata":                 metadata,
		"zarr_consolidated_format": 1,
	}
	return writeJSON(filepath.Join(path, ".zmetadata"), doc)
}

// OpenDataset reads a store written by WriteDataset back into memory.
func OpenDataset(path string) (*Dataset, error) {
	s, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, key := range keys {
		if strings.HasSuffix(key, "/.zarray") && strings.Count(key, "/") == 1 {
			names = append(names, strings.TrimSuffix(key, "/.zarray"))
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("store %s contains no arrays", path)
	}
	sort.Strings(names)

	ds := NewDataset()
	for _, name := range names {
		a, err := s.ReadArray(name)
		if err != nil {
			return nil, err
		}
		v := &Variable{Dims: a.Dims(), DType: a.Meta.DType, Attrs: a.Attrs}
		delete(v.Attrs, DimensionsAttr)
		switch {
		case a.Strings != nil:
			v.Strings = a.Strings
		case isTimeArray(a):
			v.Times = make([]time.Time, len(a.Data.Elements))
			for i, days := range a.Data.Elements {
				v.Times[i] = epoch.AddDate(0, 0, int(days))
			}
			delete(v.Attrs, "units")
			delete(v.Attrs, "calendar")
		default:
			v.Values = a.Data
		}
		ds.Add(name, v)
	}
	return ds, nil
}

func isTimeArray(a *Array) bool {
	units, _ := a.Attrs["units"].(string)
	return a.Meta.DType == "<i8" && strings.HasPrefix(units, "days since")
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := atomicfile.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
