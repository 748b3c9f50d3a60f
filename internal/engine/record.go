package engine

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
)

// IDAttr is the reserved attribute holding a record's registration id.
const IDAttr = "regId"

// Record is one entity's attribute map. Values are strings, booleans, nil,
// json.Number, []any or map[string]any as produced by DecodeRecord.
type Record map[string]any

// ID returns the record's registration id if it holds a string one.
func (r Record) ID() (string, bool) {
	id, ok := r[IDAttr].(string)
	return id, ok && id != ""
}

// Clone returns a shallow, never nil copy. Nested values are shared and must
// not be mutated by either holder.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Merge returns a new record holding r's attributes overwritten by partial's.
// Only the top level is merged.
func (r Record) Merge(partial Record) Record {
	merged := make(Record, len(r)+len(partial))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

// DecodeRecord parses a JSON object, keeping numbers as json.Number so integer
// and float literals stay distinguishable.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, ErrTrailingData
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Record(m), nil
}

// EncodeRecord renders a record the way it is persisted.
func EncodeRecord(r Record) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
