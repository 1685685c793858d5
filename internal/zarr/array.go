package zarr

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// DimensionsAttr is the xarray convention for naming array dimensions.
const DimensionsAttr = "_ARRAY_DIMENSIONS"

// Array is one stored array read fully into memory. Numeric arrays populate
// Data; fixed-width unicode arrays populate Strings instead.
type Array struct {
	Key     string
	Meta    *ArrayMeta
	Attrs   map[string]any
	Data    *sparse.DenseArray
	Strings []string
}

func zerosDense(shape []int) *sparse.DenseArray {
	return sparse.ZerosDense(shape...)
}

// Dims returns the array's dimension names from its _ARRAY_DIMENSIONS
// attribute, synthesizing dim_0..dim_n names when the attribute is absent.
func (a *Array) Dims() []string {
	if raw, ok := a.Attrs[DimensionsAttr]; ok {
		if names, ok := toStringSlice(raw); ok && len(names) == len(a.Meta.Shape) {
			return names
		}
	}
	names := make([]string, len(a.Meta.Shape))
	for i := range names {
		names[i] = fmt.Sprintf("dim_%d", i)
	}
	return names
}

// DropLeading returns a view of the array with its first axis removed,
// keeping only slot 0. Source indicator arrays carry a singleton leading
// "index" axis beyond their natural spatial dimensions.
func (a *Array) DropLeading() (*Array, error) {
	if len(a.Meta.Shape) < 2 {
		return nil, fmt.Errorf("array %s: cannot drop leading axis of %d-d array", a.Key, len(a.Meta.Shape))
	}
	if a.Data == nil {
		return nil, fmt.Errorf("array %s: cannot drop leading axis of a string array", a.Key)
	}

	rest := a.Meta.Shape[1:]
	slab := 1
	for _, d := range rest {
		slab *= d
	}
	data := zerosDense(rest)
	copy(data.Elements, a.Data.Elements[:slab])

	meta := *a.Meta
	meta.Shape = rest
	meta.Chunks = nil

	attrs := make(map[string]any, len(a.Attrs))
	for k, v := range a.Attrs {
		attrs[k] = v
	}
	attrs[DimensionsAttr] = a.Dims()[1:]

	return &Array{Key: a.Key, Meta: &meta, Attrs: attrs, Data: data}, nil
}

// toStringSlice converts a decoded JSON value ([]any or []string) to a
// string slice.
func toStringSlice(v any) ([]string, bool) {
	switch vv := v.(type) {
	case []string:
		return vv, true
	case []any:
		out := make([]string, len(vv))
		for i, e := range vv {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
