// Package cube restructures flat per-scenario/per-year indicator arrays
// into multidimensional yearly data cubes.
package cube

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Index is the structured form of one source array key: the coordinates at
// which that array's data sits in the assembled cube.
type Index struct {
	Temperature float64
	GCM         string
	Scenario    string
	Time        time.Time
}

// ParseError indicates a store key that does not follow the indicator
// naming convention. It is fatal for the whole run: a malformed key means
// the store is inconsistent or unsupported.
type ParseError struct {
	Key string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("key %q does not match the indicator naming pattern <prefix>_<temperature>c_<gcm>_<scenario>_<year>", e.Key)
}

// Keys look like "days_tas_above_1.5c_ACCESS-CM2_ssp585_2041"; an arbitrary
// prefix and arbitrary trailing characters are allowed.
var keyPattern = regexp.MustCompile(`(?:.*_)?([0-9]+(?:\.[0-9]+)?)c_([a-zA-Z0-9-]+)_([a-zA-Z0-9]+)_([0-9]{4})`)

// ParseKey extracts the index fields encoded in a source array key.
func ParseKey(key string) (Index, error) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return Index{}, &ParseError{Key: key}
	}
	temperature, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Index{}, &ParseError{Key: key}
	}
	year, err := strconv.Atoi(m[4])
	if err != nil {
		return Index{}, &ParseError{Key: key}
	}
	return Index{
		Temperature: temperature,
		GCM:         m[2],
		Scenario:    m[3],
		Time:        time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

// FormatKey renders an index back into its key form.
func FormatKey(idx Index) string {
	return fmt.Sprintf("%gc_%s_%s_%04d", idx.Temperature, idx.GCM, idx.Scenario, idx.Time.Year())
}

// Year returns the index's calendar year.
func (idx Index) Year() int {
	return idx.Time.Year()
}
