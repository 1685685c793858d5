package stac

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// cubeDimensions builds the datacube extension's cube:dimensions object.
// Spatial and temporal axes get typed entries; every other axis of the
// data variable becomes a custom dimension listing its values (stringified
// when stringifyOther is set, matching how items describe them).
func cubeDimensions(ds *CubeDataset, stringifyOther bool) map[string]Dimension {
	dims := make(map[string]Dimension)
	for _, name := range ds.Data.Dims {
		v, ok := ds.DS.Vars[name]
		if !ok {
			continue
		}
		switch name {
		case "longitude":
			dims[name] = spatialDimension(v.Values.Elements, "x")
		case "latitude":
			dims[name] = spatialDimension(v.Values.Elements, "y")
		case "time":
			first, last := v.Times[0], v.Times[len(v.Times)-1]
			dims[name] = Dimension{
				Type:   "temporal",
				Extent: []any{first.Format(time.RFC3339), last.Format(time.RFC3339)},
			}
		default:
			d := Dimension{Type: "other", Description: longName(v)}
			switch {
			case v.Strings != nil:
				for _, s := range v.Strings {
					d.Values = append(d.Values, s)
				}
			case v.Values != nil:
				for _, f := range v.Values.Elements {
					if stringifyOther {
						d.Values = append(d.Values, fmt.Sprintf("%g", f))
					} else {
						d.Values = append(d.Values, f)
					}
				}
			}
			dims[name] = d
		}
	}
	return dims
}

func spatialDimension(values []float64, axis string) Dimension {
	return Dimension{
		Type:            "spatial",
		Axis:            axis,
		Extent:          []any{floats.Min(values), floats.Max(values)},
		ReferenceSystem: "epsg:4326",
	}
}
