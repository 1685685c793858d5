package stac

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"github.com/eodatahub/hazcube/internal/indicators"
)

// CollectionOptions tune optional collection content.
type CollectionOptions struct {
	// Render enables the render extension block. Resolved once at
	// startup from configuration.
	Render bool
}

// CreateCollection builds a STAC Collection describing a (possibly
// multi-year) cube dataset.
func CreateCollection(ds *CubeDataset, reg *indicators.Registry, opts CollectionOptions) (*Collection, error) {
	desc, ok := reg.Get(ds.Name)
	if !ok {
		return nil, fmt.Errorf("indicator %q is not registered", ds.Name)
	}

	bbox, err := ds.BBox()
	if err != nil {
		return nil, err
	}
	times := ds.Times()
	if len(times) == 0 {
		return nil, fmt.Errorf("dataset %s has no time axis", ds.Href)
	}
	start := times[0].Format(time.RFC3339)
	end := times[len(times)-1].Format(time.RFC3339)

	keywords := desc.Keywords
	if keywords == nil {
		keywords = indicators.DefaultKeywords
	}

	c := &Collection{
		Type:           "Collection",
		StacVersion:    StacVersion,
		StacExtensions: []string{DatacubeExtension},
		ID:             slug.Make(desc.Name),
		Title:          desc.Title,
		Description:    desc.Description,
		Keywords:       keywords,
		License:        "Apache-2.0",
		Providers: []Provider{
			{
				Name:  "UK EO Data Hub",
				URL:   "https://eodatahub.org.uk/",
				Roles: []string{"host", "producer", "licensor"},
			},
			{
				Name:  "OS Climate",
				URL:   "http://os-climate.org/",
				Roles: []string{"producer"},
			},
		},
		Extent: Extent{
			Spatial:  SpatialExtent{BBox: [][]float64{bbox}},
			Temporal: TemporalExtent{Interval: [][]*string{{&start, &end}}},
		},
		CubeDimensions: cubeDimensions(ds, false),
		Links: []Link{
			{
				Rel:   "license",
				Href:  "http://www.apache.org/licenses/LICENSE-2.0",
				Type:  "text/html",
				Title: "Apache-2.0 license",
			},
		},
	}

	if opts.Render {
		c.StacExtensions = append(c.StacExtensions, RenderExtension)
		c.Renders = map[string]Render{
			desc.Name: {
				Assets:       []string{desc.Name},
				Rescale:      [][]float64{{0, 100}},
				Nodata:       0,
				ColormapName: "coolwarm",
			},
		}
	}

	return c, nil
}
