package stac

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/eodatahub/hazcube/internal/atomicfile"
)

// SaveJSON writes a STAC document to path as indented JSON, atomically.
func SaveJSON(path string, doc any) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal STAC document: %w", err)
	}
	raw = append(raw, '\n')
	if err := atomicfile.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
