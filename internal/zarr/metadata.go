// Package zarr reads and writes directory-backed Zarr v2 stores.
//
// Only the subset of the format this tool needs is implemented: C-order
// arrays, raw or zlib-compressed chunks, numeric and fixed-width unicode
// dtypes, and xarray-style _ARRAY_DIMENSIONS attributes. Blosc-compressed
// stores are rejected with an explicit error.
package zarr

import (
	"fmt"
	"strconv"
	"strings"
)

// ArrayMeta is the parsed form of a .zarray document.
type ArrayMeta struct {
	Chunks             []int       `json:"chunks"`
	Compressor         *Compressor `json:"compressor"`
	DType              string      `json:"dtype"`
	FillValue          any         `json:"fill_value"`
	Filters            any         `json:"filters"`
	Order              string      `json:"order"`
	Shape              []int       `json:"shape"`
	ZarrFormat         int         `json:"zarr_format"`
	DimensionSeparator string      `json:"dimension_separator,omitempty"`
}

// Compressor identifies the chunk compression codec.
type Compressor struct {
	ID    string `json:"id"`
	Level int    `json:"level,omitempty"`
}

// GroupMeta is a .zgroup document.
type GroupMeta struct {
	ZarrFormat int `json:"zarr_format"`
}

func (m *ArrayMeta) separator() string {
	if m.DimensionSeparator == "" {
		return "."
	}
	return m.DimensionSeparator
}

// elemCount returns the total number of elements in the array.
func (m *ArrayMeta) elemCount() int {
	n := 1
	for _, d := range m.Shape {
		n *= d
	}
	return n
}

// dtypeSize returns the per-element byte size of a dtype string such as
// "<f8" or "<U12".
func dtypeSize(dt string) (int, error) {
	if n, ok := dtypeUnicodeLen(dt); ok {
		return 4 * n, nil
	}
	if len(dt) < 3 {
		return 0, fmt.Errorf("invalid dtype %q", dt)
	}
	size, err := strconv.Atoi(dt[2:])
	if err != nil {
		return 0, fmt.Errorf("invalid dtype %q", dt)
	}
	return size, nil
}

// dtypeUnicodeLen reports whether dt is a fixed-width unicode dtype and, if
// so, its length in code points.
func dtypeUnicodeLen(dt string) (int, bool) {
	if len(dt) < 3 || (dt[0] != '<' && dt[0] != '|') || dt[1] != 'U' {
		return 0, false
	}
	n, err := strconv.Atoi(dt[2:])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// validDType checks that a dtype is one this package can decode.
func validDType(dt string) error {
	if _, ok := dtypeUnicodeLen(dt); ok {
		return nil
	}
	switch dt {
	case "|b1", "|i1", "|u1",
		"<i2", "<i4", "<i8",
		"<u2", "<u4", "<u8",
		"<f4", "<f8":
		return nil
	}
	if strings.HasPrefix(dt, ">") {
		return fmt.Errorf("big-endian dtype %q is not supported", dt)
	}
	return fmt.Errorf("unsupported dtype %q", dt)
}
