// Package indicators holds the registry of hazard indicator descriptors:
// the titles, descriptions, and per-axis attributes attached to assembled
// cubes and their STAC metadata.
package indicators

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// AxisAttrs are the descriptive attributes attached to one cube axis (or
// to the data variable itself).
type AxisAttrs struct {
	LongName string `yaml:"long_name"`
	Units    string `yaml:"units,omitempty"`
}

// Map renders the attributes as a zarr attribute map, omitting empty
// fields.
func (a AxisAttrs) Map() map[string]any {
	m := map[string]any{}
	if a.LongName != "" {
		m["long_name"] = a.LongName
	}
	if a.Units != "" {
		m["units"] = a.Units
	}
	return m
}

// Descriptor describes one registered indicator. Axes maps axis names to
// their attributes; the entry keyed by the indicator's own name describes
// the data variable.
type Descriptor struct {
	Name        string               `yaml:"name"`
	Title       string               `yaml:"title"`
	Description string               `yaml:"description"`
	Keywords    []string             `yaml:"keywords,omitempty"`
	Axes        map[string]AxisAttrs `yaml:"axes"`
}

// Registry is an explicit set of indicator descriptors, passed into the
// cubify and STAC builders rather than read from process-wide constants.
type Registry struct {
	byName map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register adds a descriptor, replacing any previous one of the same name.
func (r *Registry) Register(d *Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("indicator descriptor has no name")
	}
	r.byName[d.Name] = d
	return nil
}

// Get looks up a descriptor by indicator name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns all registered indicator names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile registers every descriptor found in a YAML file. The file holds
// a list of descriptors under a top-level "indicators" key.
func (r *Registry) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read indicator registry %s: %w", path, err)
	}
	var doc struct {
		Indicators []*Descriptor `yaml:"indicators"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse indicator registry %s: %w", path, err)
	}
	for _, d := range doc.Indicators {
		if err := r.Register(d); err != nil {
			return fmt.Errorf("indicator registry %s: %w", path, err)
		}
	}
	return nil
}
