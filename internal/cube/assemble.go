package cube

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/eodatahub/hazcube/internal/indicators"
	"github.com/eodatahub/hazcube/internal/zarr"
)

// GridMismatchError indicates a source array whose spatial grid differs
// from the group's sample array. Assembling such a group would silently
// misalign data, so it is fatal.
type GridMismatchError struct {
	Key    string
	Shape  []int
	Sample []int
}

func (e *GridMismatchError) Error() string {
	return fmt.Sprintf("source array %q has spatial shape %v but the group's sample has %v", e.Key, e.Shape, e.Sample)
}

// AssembleGroup builds one data cube from a group of source arrays and
// persists it to {outputDir}/{indicator}_{year:04d}.zarr, returning the
// output path. A pre-existing store at that path is removed first, since
// the writer requires an initially absent destination.
func AssembleGroup(src Source, g Group, desc *indicators.Descriptor, outputDir string, log *logrus.Logger) (string, error) {
	cs := BuildCoords(g)

	sampleKey := g.Keys[0]
	sample, err := readSource(src, sampleKey)
	if err != nil {
		return "", err
	}
	if err := attachNative(cs, src, sampleKey, sample); err != nil {
		return "", err
	}

	log.WithFields(logrus.Fields{
		"year":    g.Year,
		"records": len(g.Keys),
		"shape":   cs.Shape(),
	}).Info("assembling data cube")

	cube := sparse.ZerosDense(cs.Shape()...)
	slab := cs.spatialSize()
	for _, key := range g.Keys {
		a, err := readSource(src, key)
		if err != nil {
			return "", err
		}
		if !shapeEqual(a.Data.Shape, sample.Data.Shape) {
			return "", &GridMismatchError{Key: key, Shape: a.Data.Shape, Sample: sample.Data.Shape}
		}
		off, err := cs.offset(g.Records[key])
		if err != nil {
			return "", fmt.Errorf("place %q: %w", key, err)
		}
		copy(cube.Elements[off:off+slab], a.Data.Elements)
	}

	ds := buildDataset(cs, cube, sample, desc)

	outputPath := filepath.Join(outputDir, fmt.Sprintf("%s_%04d.zarr", desc.Name, g.Year))
	if err := os.RemoveAll(outputPath); err != nil {
		return "", fmt.Errorf("clear existing store %s: %w", outputPath, err)
	}
	if err := zarr.WriteDataset(outputPath, ds); err != nil {
		return "", fmt.Errorf("persist cube for year %d: %w", g.Year, err)
	}
	return outputPath, nil
}

// readSource reads one source array, dropping the singleton leading
// "index" axis the indicator arrays carry beyond their natural dimensions.
func readSource(src Source, key string) (*zarr.Array, error) {
	a, err := src.ReadArray(key)
	if err != nil {
		return nil, err
	}
	if a.Data == nil {
		return nil, fmt.Errorf("source array %q is not numeric", key)
	}
	if dims := a.Dims(); len(dims) > 0 && dims[0] == "index" {
		return a.DropLeading()
	}
	return a, nil
}

// attachNative unions the sample array's own dimensions into the
// coordinate space, using the sample's actual coordinate values verbatim.
// Coordinate arrays are looked up as siblings of the sample array; when a
// sibling is absent the axis falls back to integer positions.
func attachNative(cs *CoordSpace, src Source, sampleKey string, sample *zarr.Array) error {
	base := path.Dir(sampleKey)
	for i, dim := range sample.Dims() {
		ax := NativeAxis{Name: dim}
		siblingKey := dim
		if base != "." {
			siblingKey = base + "/" + dim
		}
		sibling, err := src.ReadArray(siblingKey)
		if err == nil && sibling.Data != nil && len(sibling.Data.Elements) == sample.Data.Shape[i] {
			ax.Values = sibling.Data.Elements
			ax.Attrs = sibling.Attrs
			delete(ax.Attrs, zarr.DimensionsAttr)
		} else {
			ax.Values = make([]float64, sample.Data.Shape[i])
			for j := range ax.Values {
				ax.Values[j] = float64(j)
			}
		}
		cs.Native = append(cs.Native, ax)
	}
	return nil
}

// buildDataset wraps the populated cube and its coordinate axes into a
// writable dataset, attaching descriptive metadata. Registered indicator
// attributes win over attributes copied from the sample array.
func buildDataset(cs *CoordSpace, cube *sparse.DenseArray, sample *zarr.Array, desc *indicators.Descriptor) *zarr.Dataset {
	ds := zarr.NewDataset()

	dataAttrs := make(map[string]any)
	for k, v := range sample.Attrs {
		dataAttrs[k] = v
	}
	delete(dataAttrs, zarr.DimensionsAttr)
	applyAxisAttrs(dataAttrs, desc, desc.Name)
	ds.Add(desc.Name, &zarr.Variable{
		Dims:   cs.Dims(),
		Values: cube,
		DType:  sample.Meta.DType,
		Attrs:  dataAttrs,
	})

	ds.Add("temperature", &zarr.Variable{
		Dims:   []string{"temperature"},
		Values: denseFrom(cs.Temperatures),
		Attrs:  axisAttrs(desc, "temperature", nil),
	})
	ds.Add("gcm", &zarr.Variable{
		Dims:    []string{"gcm"},
		Strings: cs.GCMs,
		Attrs:   axisAttrs(desc, "gcm", nil),
	})
	ds.Add("scenario", &zarr.Variable{
		Dims:    []string{"scenario"},
		Strings: cs.Scenarios,
		Attrs:   axisAttrs(desc, "scenario", nil),
	})
	ds.Add("time", &zarr.Variable{
		Dims:  []string{"time"},
		Times: cs.Times,
		Attrs: axisAttrs(desc, "time", nil),
	})
	for _, ax := range cs.Native {
		ds.Add(ax.Name, &zarr.Variable{
			Dims:   []string{ax.Name},
			Values: denseFrom(ax.Values),
			Attrs:  axisAttrs(desc, ax.Name, ax.Attrs),
		})
	}
	return ds
}

// axisAttrs merges sample-derived attributes with registered ones, the
// registered attributes taking precedence.
func axisAttrs(desc *indicators.Descriptor, name string, sampleAttrs map[string]any) map[string]any {
	attrs := make(map[string]any)
	for k, v := range sampleAttrs {
		attrs[k] = v
	}
	applyAxisAttrs(attrs, desc, name)
	return attrs
}

func applyAxisAttrs(attrs map[string]any, desc *indicators.Descriptor, name string) {
	if ax, ok := desc.Axes[name]; ok {
		for k, v := range ax.Map() {
			attrs[k] = v
		}
	}
}

func denseFrom(vals []float64) *sparse.DenseArray {
	a := sparse.ZerosDense(len(vals))
	copy(a.Elements, vals)
	return a
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
