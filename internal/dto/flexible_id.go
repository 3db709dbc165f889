package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexibleID accepts either a JSON string or a JSON number and keeps its text.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleID(n.String())
		return nil
	}

	return fmt.Errorf("id must be a string or number, got %s", string(data))
}

// String returns the id with surrounding whitespace removed, so " 7 " and
// 7 name the same user everywhere.
func (f FlexibleID) String() string {
	return strings.TrimSpace(string(f))
}
