package stac

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/eodatahub/hazcube/internal/zarr"
)

// SchemaError indicates an input dataset with other than exactly one data
// variable. It names the offending variable set.
type SchemaError struct {
	Path string
	Vars []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("only datasets with a single data variable are supported; %s has %v", e.Path, e.Vars)
}

// CubeDataset is the metadata view over one assembled cube store.
type CubeDataset struct {
	Href string
	DS   *zarr.Dataset
	Name string // the single data variable's name
	Data *zarr.Variable
}

// Open loads a cube store and verifies it carries exactly one data
// variable.
func Open(path string) (*CubeDataset, error) {
	ds, err := zarr.OpenDataset(path)
	if err != nil {
		return nil, err
	}
	dataVars := ds.DataVars()
	if len(dataVars) != 1 {
		return nil, &SchemaError{Path: path, Vars: dataVars}
	}
	name := dataVars[0]
	return &CubeDataset{Href: path, DS: ds, Name: name, Data: ds.Vars[name]}, nil
}

// OpenAll loads several cube stores of the same indicator and merges them
// along the time axis, the multi-file view a collection describes.
func OpenAll(paths []string) (*CubeDataset, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no source datasets given")
	}
	first, err := Open(paths[0])
	if err != nil {
		return nil, err
	}
	if len(paths) == 1 {
		return first, nil
	}

	seen := make(map[time.Time]bool)
	var times []time.Time
	add := func(ts []time.Time) {
		for _, t := range ts {
			if !seen[t] {
				seen[t] = true
				times = append(times, t)
			}
		}
	}
	add(first.Times())

	for _, path := range paths[1:] {
		next, err := Open(path)
		if err != nil {
			return nil, err
		}
		if next.Name != first.Name {
			return nil, fmt.Errorf("cannot merge datasets of different indicators %q and %q", first.Name, next.Name)
		}
		if err := compatibleCoords(first, next); err != nil {
			return nil, err
		}
		add(next.Times())
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	timeVar := first.DS.Vars["time"]
	merged := &zarr.Variable{Dims: timeVar.Dims, Times: times, Attrs: timeVar.Attrs}
	first.DS.Vars["time"] = merged
	return first, nil
}

// compatibleCoords verifies that every non-time coordinate axis of b equals
// the corresponding axis of a. Merging is defined along time only, so any
// other axis mismatch would mislabel the merged dimensions.
func compatibleCoords(a, b *CubeDataset) error {
	for _, name := range a.DS.Names {
		v := a.DS.Vars[name]
		if name == "time" || len(v.Dims) != 1 || v.Dims[0] != name {
			continue
		}
		w, ok := b.DS.Vars[name]
		if !ok || !coordEqual(v, w) {
			return fmt.Errorf("cannot merge %s and %s: %s axes differ", a.Href, b.Href, name)
		}
	}
	return nil
}

func coordEqual(a, b *zarr.Variable) bool {
	switch {
	case a.Strings != nil:
		if b.Strings == nil || len(a.Strings) != len(b.Strings) {
			return false
		}
		for i := range a.Strings {
			if a.Strings[i] != b.Strings[i] {
				return false
			}
		}
		return true
	case a.Values != nil:
		if b.Values == nil || len(a.Values.Elements) != len(b.Values.Elements) {
			return false
		}
		for i := range a.Values.Elements {
			if a.Values.Elements[i] != b.Values.Elements[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Times returns the dataset's time axis.
func (c *CubeDataset) Times() []time.Time {
	if v, ok := c.DS.Vars["time"]; ok {
		return v.Times
	}
	return nil
}

// BBox returns [west, south, east, north] from the longitude and latitude
// axes.
func (c *CubeDataset) BBox() ([]float64, error) {
	lon, ok := c.DS.Vars["longitude"]
	if !ok || lon.Values == nil {
		return nil, fmt.Errorf("dataset %s has no longitude coordinate", c.Href)
	}
	lat, ok := c.DS.Vars["latitude"]
	if !ok || lat.Values == nil {
		return nil, fmt.Errorf("dataset %s has no latitude coordinate", c.Href)
	}
	return []float64{
		floats.Min(lon.Values.Elements),
		floats.Min(lat.Values.Elements),
		floats.Max(lon.Values.Elements),
		floats.Max(lat.Values.Elements),
	}, nil
}

// longName returns a variable's long_name attribute, if set.
func longName(v *zarr.Variable) string {
	if v == nil {
		return ""
	}
	s, _ := v.Attrs["long_name"].(string)
	return s
}
