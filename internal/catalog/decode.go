package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a template record. The format is chosen by the file
// extension: .json, .yaml or .yml.
func Decode(filename string, data []byte) (*Template, error) {
	var t Template

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("unsupported template format %q (want .json, .yaml or .yml)", ext)
	}

	return &t, nil
}

// Encode writes t as YAML
func Encode(t *Template) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeFile writes t in the format matching filename's extension
func EncodeFile(filename string, t *Template) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode template: %w", err)
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		return Encode(t)
	default:
		return nil, fmt.Errorf("unsupported template format %q (want .json, .yaml or .yml)", ext)
	}
}
