package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Document is a raw legacy record with driver-specific types flattened:
// nested documents become map[string]any, arrays []any and datetimes time.Time.
type Document map[string]any

// NewDocument normalizes a driver value (bson.D, bson.M or a plain map) into a Document.
func NewDocument(raw any) (Document, error) {
	m, ok := normalizeValue(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record is not a document: %T", raw)
	}
	return Document(m), nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.M:
		return normalizeMap(t)
	case Document:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case bson.A:
		return normalizeSlice(t)
	case []any:
		return normalizeSlice(t)
	case bson.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	default:
		return v
	}
}

func normalizeMap(src map[string]any) map[string]any {
	m := make(map[string]any, len(src))
	for k, v := range src {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeSlice(src []any) []any {
	out := make([]any, len(src))
	for i, v := range src {
		out[i] = normalizeValue(v)
	}
	return out
}

// ID returns the legacy string identity, falling back to the hex object id.
func (d Document) ID() string {
	if id, ok := d["id"].(string); ok && id != "" {
		return id
	}
	if oid, ok := d["_id"].(bson.ObjectID); ok {
		return oid.Hex()
	}
	return "<unknown>"
}

// String returns the string at key and whether it was a string.
func (d Document) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Sub returns the nested document at key, or nil.
func (d Document) Sub(key string) Document {
	if m, ok := d[key].(map[string]any); ok {
		return Document(m)
	}
	return nil
}

// Has reports whether key is present, including explicit nulls.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Decode maps the document onto a typed legacy view through a bson round trip.
func (d Document) Decode(out any) error {
	data, err := bson.Marshal(map[string]any(d))
	if err != nil {
		return fmt.Errorf("encode record %s: %w", d.ID(), err)
	}
	if err := bson.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record %s: %w", d.ID(), err)
	}
	return nil
}
