// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

// ExportFile is the top-level structure written by WriteYAML and WriteJSON.
type ExportFile struct {
	Drafts []types.DraftRecord `json:"drafts" yaml:"drafts"`
}

// WriteYAML writes records to w as YAML.
func WriteYAML(w io.Writer, records []types.DraftRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ExportFile{Drafts: nonNil(records)}); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes records to w as indented JSON.
func WriteJSON(w io.Writer, records []types.DraftRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ExportFile{Drafts: nonNil(records)}); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func nonNil(records []types.DraftRecord) []types.DraftRecord {
	if records == nil {
		return []types.DraftRecord{}
	}
	return records
}
