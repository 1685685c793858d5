package zarr

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// decompress reverses the chunk compression identified by c. A nil
// compressor means raw bytes.
func decompress(c *Compressor, raw []byte) ([]byte, error) {
	if c == nil {
		return raw, nil
	}
	switch c.ID {
	case "zlib":
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("open zlib chunk: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("read zlib chunk: %w", err)
		}
		return out, nil
	case "blosc":
		return nil, fmt.Errorf("blosc-compressed chunks are not supported; re-write the store with zlib or no compression")
	default:
		return nil, fmt.Errorf("unsupported compressor %q", c.ID)
	}
}

func compress(c *Compressor, raw []byte) ([]byte, error) {
	if c == nil {
		return raw, nil
	}
	if c.ID != "zlib" {
		return nil, fmt.Errorf("unsupported compressor %q", c.ID)
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.Level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeValues decodes n little-endian elements of the given dtype into
// float64 values.
func decodeValues(dt string, raw []byte, n int) ([]float64, error) {
	size, err := dtypeSize(dt)
	if err != nil {
		return nil, err
	}
	if len(raw) < n*size {
		return nil, fmt.Errorf("chunk too short: need %d bytes for %d %q elements, have %d", n*size, n, dt, len(raw))
	}
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		b := raw[i*size : (i+1)*size]
		switch dt {
		case "|b1", "|u1":
			vals[i] = float64(b[0])
		case "|i1":
			vals[i] = float64(int8(b[0]))
		case "<i2":
			vals[i] = float64(int16(binary.LittleEndian.Uint16(b)))
		case "<i4":
			vals[i] = float64(int32(binary.LittleEndian.Uint32(b)))
		case "<i8":
			vals[i] = float64(int64(binary.LittleEndian.Uint64(b)))
		case "<u2":
			vals[i] = float64(binary.LittleEndian.Uint16(b))
		case "<u4":
			vals[i] = float64(binary.LittleEndian.Uint32(b))
		case "<u8":
			vals[i] = float64(binary.LittleEndian.Uint64(b))
		case "<f4":
			vals[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		case "<f8":
			vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(b))
		default:
			return nil, fmt.Errorf("unsupported dtype %q", dt)
		}
	}
	return vals, nil
}

// encodeValues encodes float64 values as little-endian elements of the
// given dtype.
func encodeValues(dt string, vals []float64) ([]byte, error) {
	size, err := dtypeSize(dt)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, len(vals)*size)
	for i, v := range vals {
		b := raw[i*size : (i+1)*size]
		switch dt {
		case "|b1", "|u1":
			b[0] = byte(uint8(v))
		case "|i1":
			b[0] = byte(int8(v))
		case "<i2":
			binary.LittleEndian.PutUint16(b, uint16(int16(v)))
		case "<i4":
			binary.LittleEndian.PutUint32(b, uint32(int32(v)))
		case "<i8":
			binary.LittleEndian.PutUint64(b, uint64(int64(v)))
		case "<u2":
			binary.LittleEndian.PutUint16(b, uint16(v))
		case "<u4":
			binary.LittleEndian.PutUint32(b, uint32(v))
		case "<u8":
			binary.LittleEndian.PutUint64(b, uint64(v))
		case "<f4":
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
		case "<f8":
			binary.LittleEndian.PutUint64(b, math.Float64bits(v))
		default:
			return nil, fmt.Errorf("unsupported dtype %q", dt)
		}
	}
	return raw, nil
}

// decodeStrings decodes n fixed-width UTF-32LE elements (numpy "<U#") into
// Go strings, dropping NUL padding.
func decodeStrings(dt string, raw []byte, n int) ([]string, error) {
	runes, ok := dtypeUnicodeLen(dt)
	if !ok {
		return nil, fmt.Errorf("dtype %q is not a unicode dtype", dt)
	}
	width := 4 * runes
	if len(raw) < n*width {
		return nil, fmt.Errorf("chunk too short: need %d bytes for %d %q elements, have %d", n*width, n, dt, len(raw))
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		var sb strings.Builder
		for j := 0; j < runes; j++ {
			cp := binary.LittleEndian.Uint32(raw[i*width+j*4:])
			if cp == 0 {
				break
			}
			sb.WriteRune(rune(cp))
		}
		out[i] = sb.String()
	}
	return out, nil
}

// encodeStrings encodes Go strings as fixed-width UTF-32LE and returns the
// matching "<U#" dtype.
func encodeStrings(strs []string) (string, []byte) {
	maxLen := 1
	for _, s := range strs {
		if n := utf8.RuneCountInString(s); n > maxLen {
			maxLen = n
		}
	}
	raw := make([]byte, len(strs)*maxLen*4)
	for i, s := range strs {
		j := 0
		for _, r := range s {
			binary.LittleEndian.PutUint32(raw[(i*maxLen+j)*4:], uint32(r))
			j++
		}
	}
	return fmt.Sprintf("<U%d", maxLen), raw
}
