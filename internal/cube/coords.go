package cube

import (
	"fmt"
	"sort"
	"time"
)

// NativeAxis is one spatial/temporal dimension copied verbatim from the
// sample source array (e.g. latitude, longitude).
type NativeAxis struct {
	Name   string
	Values []float64
	Attrs  map[string]any
}

// CoordSpace is the derived coordinate space of one cube: the sorted,
// deduplicated index-field values of a group, augmented with the native
// dimensions of a representative source array. Axis order is fixed:
// temperature, gcm, scenario, time, then the native axes.
type CoordSpace struct {
	Temperatures []float64
	GCMs         []string
	Scenarios    []string
	Times        []time.Time
	Native       []NativeAxis
}

// BuildCoords derives the index-field axes from a group's records. Native
// axes are attached later by the assembler once the sample array is read.
func BuildCoords(g Group) *CoordSpace {
	temps := make(map[float64]bool)
	gcms := make(map[string]bool)
	scenarios := make(map[string]bool)
	times := make(map[time.Time]bool)
	for _, idx := range g.Records {
		temps[idx.Temperature] = true
		gcms[idx.GCM] = true
		scenarios[idx.Scenario] = true
		times[idx.Time] = true
	}

	cs := &CoordSpace{}
	for t := range temps {
		cs.Temperatures = append(cs.Temperatures, t)
	}
	sort.Float64s(cs.Temperatures)
	for g := range gcms {
		cs.GCMs = append(cs.GCMs, g)
	}
	sort.Strings(cs.GCMs)
	for s := range scenarios {
		cs.Scenarios = append(cs.Scenarios, s)
	}
	sort.Strings(cs.Scenarios)
	for t := range times {
		cs.Times = append(cs.Times, t)
	}
	sort.Slice(cs.Times, func(i, j int) bool { return cs.Times[i].Before(cs.Times[j]) })
	return cs
}

// Dims returns all axis names in cube order.
func (cs *CoordSpace) Dims() []string {
	dims := []string{"temperature", "gcm", "scenario", "time"}
	for _, ax := range cs.Native {
		dims = append(dims, ax.Name)
	}
	return dims
}

// Shape returns the cube shape implied by the coordinate space.
func (cs *CoordSpace) Shape() []int {
	shape := []int{len(cs.Temperatures), len(cs.GCMs), len(cs.Scenarios), len(cs.Times)}
	for _, ax := range cs.Native {
		shape = append(shape, len(ax.Values))
	}
	return shape
}

// spatialSize is the element count of one native-axis slab.
func (cs *CoordSpace) spatialSize() int {
	n := 1
	for _, ax := range cs.Native {
		n *= len(ax.Values)
	}
	return n
}

// offset returns the flat element offset of the slab addressed by idx.
func (cs *CoordSpace) offset(idx Index) (int, error) {
	ti := sort.SearchFloat64s(cs.Temperatures, idx.Temperature)
	if ti == len(cs.Temperatures) || cs.Temperatures[ti] != idx.Temperature {
		return 0, fmt.Errorf("temperature %g not in coordinate space", idx.Temperature)
	}
	gi := sort.SearchStrings(cs.GCMs, idx.GCM)
	if gi == len(cs.GCMs) || cs.GCMs[gi] != idx.GCM {
		return 0, fmt.Errorf("gcm %q not in coordinate space", idx.GCM)
	}
	si := sort.SearchStrings(cs.Scenarios, idx.Scenario)
	if si == len(cs.Scenarios) || cs.Scenarios[si] != idx.Scenario {
		return 0, fmt.Errorf("scenario %q not in coordinate space", idx.Scenario)
	}
	yi := sort.Search(len(cs.Times), func(i int) bool { return !cs.Times[i].Before(idx.Time) })
	if yi == len(cs.Times) || !cs.Times[yi].Equal(idx.Time) {
		return 0, fmt.Errorf("time %s not in coordinate space", idx.Time.Format("2006-01-02"))
	}

	flat := ((ti*len(cs.GCMs)+gi)*len(cs.Scenarios)+si)*len(cs.Times) + yi
	return flat * cs.spatialSize(), nil
}
