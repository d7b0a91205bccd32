package fs

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/itemstore/pkg/core"
)

// fileVersion is the format version written to the items file.
const fileVersion = 1

// document is the on-disk layout of the items file.
type document struct {
	Version int         `yaml:"version"`
	Items   []core.Item `yaml:"items"`
}

// decodeItems parses the items file. An empty file holds no items.
func decodeItems(data []byte) ([]core.Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc.Version > fileVersion {
		return nil, fmt.Errorf("unsupported items file version %d", doc.Version)
	}
	return doc.Items, nil
}

// encodeItems renders items in the on-disk layout.
func encodeItems(items []core.Item) ([]byte, error) {
	if items == nil {
		items = []core.Item{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: fileVersion, Items: items}); err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
