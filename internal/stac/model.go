// Package stac derives STAC Collection and Item documents from assembled
// hazard data cubes.
package stac

import (
	"github.com/ctessum/geom/encoding/geojson"
)

// StacVersion is the STAC spec version the emitted documents declare.
const StacVersion = "1.0.0"

// Extension schema URIs.
const (
	DatacubeExtension = "https://stac-extensions.github.io/datacube/v2.2.0/schema.json"
	RenderExtension   = "https://stac-extensions.github.io/render/v1.0.0/schema.json"
)

// MediaTypeZarr is the media type of a Zarr store asset.
const MediaTypeZarr = "application/vnd+zarr"

// XarrayOpenKwargs are the array-open parameters embedded in data assets so
// consumers can open the referenced store directly.
var XarrayOpenKwargs = map[string]any{"engine": "zarr", "consolidated": true}

// Provider is a STAC provider object.
type Provider struct {
	Name  string   `json:"name"`
	URL   string   `json:"url,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Link is a STAC link object.
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// SpatialExtent holds one or more bounding boxes.
type SpatialExtent struct {
	BBox [][]float64 `json:"bbox"`
}

// TemporalExtent holds one or more datetime intervals.
type TemporalExtent struct {
	Interval [][]*string `json:"interval"`
}

// Extent combines spatial and temporal extents.
type Extent struct {
	Spatial  SpatialExtent  `json:"spatial"`
	Temporal TemporalExtent `json:"temporal"`
}

// Dimension is one cube:dimensions entry of the datacube extension.
type Dimension struct {
	Type            string   `json:"type"`
	Axis            string   `json:"axis,omitempty"`
	Description     string   `json:"description,omitempty"`
	Extent          []any    `json:"extent,omitempty"`
	Values          []any    `json:"values,omitempty"`
	ReferenceSystem any      `json:"reference_system,omitempty"`
}

// Render is one renders entry of the render extension.
type Render struct {
	Assets       []string    `json:"assets"`
	Rescale      [][]float64 `json:"rescale,omitempty"`
	Nodata       any         `json:"nodata,omitempty"`
	ColormapName string      `json:"colormap_name,omitempty"`
}

// Asset is a STAC asset object.
type Asset struct {
	Href             string         `json:"href"`
	Title            string         `json:"title,omitempty"`
	Description      string         `json:"description,omitempty"`
	Type             string         `json:"type,omitempty"`
	Roles            []string       `json:"roles,omitempty"`
	XarrayOpenKwargs map[string]any `json:"xarray:open_kwargs,omitempty"`
}

// Collection is a STAC Collection document.
type Collection struct {
	Type           string               `json:"type"`
	StacVersion    string               `json:"stac_version"`
	StacExtensions []string             `json:"stac_extensions,omitempty"`
	ID             string               `json:"id"`
	Title          string               `json:"title,omitempty"`
	Description    string               `json:"description"`
	Keywords       []string             `json:"keywords,omitempty"`
	License        string               `json:"license"`
	Providers      []Provider           `json:"providers,omitempty"`
	Extent         Extent               `json:"extent"`
	CubeDimensions map[string]Dimension `json:"cube:dimensions,omitempty"`
	Renders        map[string]Render    `json:"renders,omitempty"`
	Links          []Link               `json:"links"`
}

// ItemProperties are the properties of a STAC Item.
type ItemProperties struct {
	Datetime       string               `json:"datetime"`
	CubeDimensions map[string]Dimension `json:"cube:dimensions,omitempty"`
}

// Item is a STAC Item document.
type Item struct {
	Type           string            `json:"type"`
	StacVersion    string            `json:"stac_version"`
	StacExtensions []string          `json:"stac_extensions,omitempty"`
	ID             string            `json:"id"`
	Geometry       *geojson.Geometry `json:"geometry"`
	BBox           []float64         `json:"bbox"`
	Properties     ItemProperties    `json:"properties"`
	Links          []Link            `json:"links"`
	Assets         map[string]Asset  `json:"assets"`
}
