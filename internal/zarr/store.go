package zarr

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Store is a read-only handle on a directory-backed Zarr store.
type Store struct {
	root string
}

// OpenStore opens an existing store directory.
func OpenStore(path string) (*Store, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("open store %s: not a directory", path)
	}
	return &Store{root: path}, nil
}

// Path returns the store's root directory.
func (s *Store) Path() string {
	return s.root
}

// Keys returns every key in the store (relative, slash-separated file
// paths), sorted so that enumeration order is deterministic across
// filesystems.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate store %s: %w", s.root, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// readBytes reads one key's raw content.
func (s *Store) readBytes(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
}

// readJSON reads one key and unmarshals it into v.
func (s *Store) readJSON(key string, v any) error {
	raw, err := s.readBytes(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	return nil
}

// ReadArray reads the array stored under key (the key names the array
// group, without the "/.zarray" suffix), assembling all of its chunks into
// one dense in-memory array.
func (s *Store) ReadArray(key string) (*Array, error) {
	var meta ArrayMeta
	if err := s.readJSON(key+"/.zarray", &meta); err != nil {
		return nil, fmt.Errorf("read array %s: %w", key, err)
	}
	if meta.ZarrFormat != 2 {
		return nil, fmt.Errorf("read array %s: unsupported zarr format %d", key, meta.ZarrFormat)
	}
	if meta.Order != "" && meta.Order != "C" {
		return nil, fmt.Errorf("read array %s: unsupported element order %q", key, meta.Order)
	}
	if err := validDType(meta.DType); err != nil {
		return nil, fmt.Errorf("read array %s: %w", key, err)
	}

	attrs := map[string]any{}
	if raw, err := s.readBytes(key + "/.zattrs"); err == nil {
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return nil, fmt.Errorf("read array %s: parse .zattrs: %w", key, err)
		}
	}

	a := &Array{Key: key, Meta: &meta, Attrs: attrs}
	if _, ok := dtypeUnicodeLen(meta.DType); ok {
		if len(meta.Shape) != 1 {
			return nil, fmt.Errorf("read array %s: only 1-d unicode arrays are supported", key)
		}
		a.Strings = make([]string, meta.elemCount())
	} else {
		a.Data = zerosDense(meta.Shape)
	}

	if err := s.assembleChunks(a); err != nil {
		return nil, fmt.Errorf("read array %s: %w", key, err)
	}
	return a, nil
}

// assembleChunks copies every chunk of a's backing storage into its dense
// in-memory form, honoring chunk-grid overhang at the array edges.
func (s *Store) assembleChunks(a *Array) error {
	meta := a.Meta
	grid := gridShape(meta.Shape, meta.Chunks)
	chunkLen := 1
	for _, c := range meta.Chunks {
		chunkLen *= c
	}

	for _, gi := range odometer(grid) {
		raw, err := s.readBytes(a.Key + "/" + chunkKey(gi, meta.separator()))
		if err != nil {
			if os.IsNotExist(err) {
				// Absent chunks hold the fill value, which we keep as zero.
				continue
			}
			return err
		}
		raw, err = decompress(meta.Compressor, raw)
		if err != nil {
			return err
		}

		var vals []float64
		var strs []string
		if a.Strings != nil {
			strs, err = decodeStrings(meta.DType, raw, chunkLen)
		} else {
			vals, err = decodeValues(meta.DType, raw, chunkLen)
		}
		if err != nil {
			return err
		}

		// Scatter chunk elements into the full array, skipping overhang.
		for ci, pos := range odometer(meta.Chunks) {
			idx := make([]int, len(pos))
			inBounds := true
			for d := range pos {
				idx[d] = gi[d]*meta.Chunks[d] + pos[d]
				if idx[d] >= meta.Shape[d] {
					inBounds = false
					break
				}
			}
			if !inBounds {
				continue
			}
			if a.Strings != nil {
				a.Strings[idx[0]] = strs[ci]
			} else {
				a.Data.Set(vals[ci], idx...)
			}
		}
	}
	return nil
}

// gridShape is the number of chunks per dimension.
func gridShape(shape, chunks []int) []int {
	grid := make([]int, len(shape))
	for i := range shape {
		grid[i] = (shape[i] + chunks[i] - 1) / chunks[i]
	}
	return grid
}

// chunkKey renders a chunk index vector as a storage key segment ("0.1.2").
func chunkKey(indices []int, sep string) string {
	if len(indices) == 0 {
		return "0"
	}
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, sep)
}

// odometer enumerates every index vector within shape in C order.
func odometer(shape []int) [][]int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	out := make([][]int, 0, n)
	idx := make([]int, len(shape))
	for i := 0; i < n; i++ {
		cur := make([]int, len(idx))
		copy(cur, idx)
		out = append(out, cur)
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}
