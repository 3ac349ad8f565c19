package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldsFrom converts a patch struct into Fields. Patch structs use pointer
// fields tagged `json:",omitempty"` so only the set fields are emitted.
func FieldsFrom(patch any) (Fields, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	out := Fields{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return out, nil
}
