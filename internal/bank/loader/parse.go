package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseRecords(data []byte, location string) ([]bank.Record, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &bank.SchemaError{Source: location, Message: "question bank is empty"}
	}

	var (
		raw any
		err error
	)
	if isYAML(location) {
		raw, err = decodeYAML(data)
	} else {
		raw, err = decodeJSON(data)
	}
	if err != nil {
		return nil, &bank.SchemaError{Source: location, Message: err.Error(), Err: err}
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, &bank.SchemaError{Source: location, Message: "question bank must be a JSON array of questions"}
	}

	records := make([]bank.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &bank.SchemaError{
				Source:  location,
				Field:   fmt.Sprintf("[%d]", i),
				Message: "must be a question object",
			}
		}
		record := bank.Record(obj)
		if _, ok := record.ID(); !ok {
			return nil, &bank.SchemaError{
				Source:  location,
				Field:   fmt.Sprintf("[%d].id", i),
				Message: fmt.Sprintf("must be an integer within ±%d, got %v", bank.MaxID, obj[bank.IDKey]),
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func isYAML(location string) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func decodeJSON(data []byte) (any, error) {
	var out any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return out, nil
}

// decodeYAML parses YAML and round-trips the result through encoding/json so
// records hold the same value types as JSON banks.
func decodeYAML(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return out, nil
}
