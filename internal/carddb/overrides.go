package carddb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadOverride reads a local card file. A missing file contributes nothing.
func (l *Loader) loadOverride(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Debug("Override file not found, skipping", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read override file %s: %w", path, err)
	}

	raws, err := decodeOverride(path, data)
	if err != nil {
		return nil, err
	}
	records, err := ParseRecords(raws)
	if err != nil {
		return nil, &OverrideShapeError{Path: path, Err: err}
	}

	l.logger.Debug("Override file loaded", "path", path, "cards", len(records))
	return records, nil
}

func decodeOverride(path string, data []byte) ([]json.RawMessage, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &OverrideShapeError{Path: path, Err: err}
		}
		data = converted
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err == nil {
		return raws, nil
	}

	var wrapper struct {
		Cards []json.RawMessage `json:"cards"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, &OverrideShapeError{Path: path, Err: err}
	}
	if wrapper.Cards == nil {
		return nil, &OverrideShapeError{Path: path}
	}
	return wrapper.Cards, nil
}

// yamlToJSON re-encodes a YAML document so override files share one decode
// path with JSON ones.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
