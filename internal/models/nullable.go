package models

import (
	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// NullableID distinguishes an absent reference from an explicit null one.
// The zero value is absent and is dropped by omitempty.
type NullableID struct {
	ID    string
	Valid bool
	Set   bool
}

func SomeID(id string) NullableID {
	return NullableID{ID: id, Valid: true, Set: true}
}

func NullID() NullableID {
	return NullableID{Set: true}
}

func (n NullableID) IsZero() bool {
	return !n.Set
}

func (n NullableID) MarshalBSONValue() (byte, []byte, error) {
	if !n.Valid {
		return byte(bson.TypeNull), nil, nil
	}
	t, data, err := bson.MarshalValue(n.ID)
	return byte(t), data, err
}

func (n NullableID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.ID)
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullID()
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*n = SomeID(id)
	return nil
}
