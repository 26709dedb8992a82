package models

import "encoding/json"

// NullString distinguishes a field absent from the payload from an explicit
// JSON null: Set is true whenever the key was present, and Value is nil only
// for null.
type NullString struct {
	Set   bool
	Value *string
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
