//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawRecord is a loosely shaped résumé record as submitted by the editor or read back from storage.
// Any key may be missing or carry an unexpected type.
type RawRecord map[string]any

// ParseRawRecord decodes a JSON object into a RawRecord.
// Numbers are kept as json.Number so that phone numbers and years survive unchanged.
func ParseRawRecord(data []byte) (RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode resume record: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("resume record must be a JSON object")
	}
	return RawRecord(obj), nil
}

// ToRawRecord converts canonical content back into a raw record (the shape it is persisted in).
func ToRawRecord(c *Content) (RawRecord, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content: %w", err)
	}
	return ParseRawRecord(data)
}
