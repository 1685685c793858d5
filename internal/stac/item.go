package stac

import (
	"fmt"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/gosimple/slug"
)

// CreateItem builds a STAC Item describing one cube store, with one data
// asset referencing the store itself.
func CreateItem(ds *CubeDataset, href string) (*Item, error) {
	bbox, err := ds.BBox()
	if err != nil {
		return nil, err
	}
	times := ds.Times()
	if len(times) == 0 {
		return nil, fmt.Errorf("dataset %s has no time axis", ds.Href)
	}
	start := times[0]

	geometry, err := geojson.ToGeoJSON(bboxPolygon(bbox))
	if err != nil {
		return nil, fmt.Errorf("encode item geometry: %w", err)
	}

	item := &Item{
		Type:           "Feature",
		StacVersion:    StacVersion,
		StacExtensions: []string{DatacubeExtension},
		ID:             fmt.Sprintf("%s_%04d", slug.Make(ds.Name), start.Year()),
		Geometry:       geometry,
		BBox:           bbox,
		Properties: ItemProperties{
			Datetime:       start.Format(time.RFC3339),
			CubeDimensions: cubeDimensions(ds, true),
		},
		Links: []Link{},
		Assets: map[string]Asset{
			ds.Name: {
				Href:             href,
				Title:            fmt.Sprintf("%s Zarr", ds.Name),
				Description:      longName(ds.Data),
				Type:             MediaTypeZarr,
				Roles:            []string{"data", "zarr"},
				XarrayOpenKwargs: XarrayOpenKwargs,
			},
		},
	}
	return item, nil
}

// bboxPolygon is the closed ring W,S E,S E,N W,N W,S over a bounding box.
func bboxPolygon(bbox []float64) geom.Polygon {
	w, s, e, n := bbox[0], bbox[1], bbox[2], bbox[3]
	return geom.Polygon{{
		geom.Point{X: w, Y: s},
		geom.Point{X: e, Y: s},
		geom.Point{X: e, Y: n},
		geom.Point{X: w, Y: n},
		geom.Point{X: w, Y: s},
	}}
}
