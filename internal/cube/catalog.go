package cube

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/eodatahub/hazcube/internal/zarr"
)

// Source is the storage capability set the cataloging and assembly steps
// depend on. *zarr.Store satisfies it; tests substitute fakes.
type Source interface {
	Path() string
	Keys() ([]string, error)
	ReadArray(key string) (*zarr.Array, error)
}

// StoreStructureError indicates a store with no keys matching any
// recognized indicator naming convention. It reports the observed keys so
// the store layout can be diagnosed.
type StoreStructureError struct {
	Path string
	Keys []string
}

func (e *StoreStructureError) Error() string {
	return fmt.Sprintf("store at %s does not contain any matching keys; found only %v", e.Path, e.Keys)
}

// Catalog maps source array keys (metadata suffix stripped) to their parsed
// index records. Keys holds the map's keys in sorted order so every
// downstream step is deterministic.
type Catalog struct {
	Keys    []string
	Records map[string]Index
}

// Group is the subset of a catalog assigned to one output cube.
type Group struct {
	Year    int
	Keys    []string
	Records map[string]Index
}

// IndicatorMember is the fixed name of the indicator array member inside
// each scenario-year group of a nested-convention store.
const IndicatorMember = "indicator"

// Array keys end in "/.zarray". The nested convention keeps the indicator
// array one level below the scenario-year group; the flat convention stores
// it directly.
func nestedPattern(indicator string) *regexp.Regexp {
	return regexp.MustCompile(`_[0-9]{4}/` + regexp.QuoteMeta(indicator) + `/\.zarray$`)
}

var flatPattern = regexp.MustCompile(`_[0-9]{4}/\.zarray$`)

// BuildCatalog enumerates the source store and parses every indicator
// array key into an index record.
func BuildCatalog(src Source, indicator string) (*Catalog, error) {
	allKeys, err := src.Keys()
	if err != nil {
		return nil, err
	}

	matched := filterKeys(allKeys, nestedPattern(indicator))
	if len(matched) == 0 {
		matched = filterKeys(allKeys, flatPattern)
	}
	if len(matched) == 0 {
		return nil, &StoreStructureError{Path: src.Path(), Keys: allKeys}
	}

	c := &Catalog{Records: make(map[string]Index, len(matched))}
	for _, key := range matched {
		key = strings.TrimSuffix(key, "/.zarray")
		idx, err := ParseKey(key)
		if err != nil {
			return nil, err
		}
		c.Keys = append(c.Keys, key)
		c.Records[key] = idx
	}
	sort.Strings(c.Keys)
	return c, nil
}

func filterKeys(keys []string, pattern *regexp.Regexp) []string {
	var out []string
	for _, key := range keys {
		if pattern.MatchString(key) {
			out = append(out, key)
		}
	}
	return out
}

// GroupByYear partitions the catalog into one group per record year. When
// split is false all records collapse into a single group keyed by the
// minimum year, so the output path does not depend on enumeration order.
// Groups come back in ascending year order.
func GroupByYear(c *Catalog, split bool) []Group {
	byYear := make(map[int]*Group)
	for _, key := range c.Keys {
		idx := c.Records[key]
		year := idx.Year()
		if !split {
			year = minYear(c)
		}
		g, ok := byYear[year]
		if !ok {
			g = &Group{Year: year, Records: make(map[string]Index)}
			byYear[year] = g
		}
		g.Keys = append(g.Keys, key)
		g.Records[key] = idx
	}

	groups := make([]Group, 0, len(byYear))
	for _, g := range byYear {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Year < groups[j].Year })
	return groups
}

func minYear(c *Catalog) int {
	min := 0
	for _, key := range c.Keys {
		if y := c.Records[key].Year(); min == 0 || y < min {
			min = y
		}
	}
	return min
}
