package dto

import (
	"bytes"
	"encoding/json"
)

// Amount is a decimal quantity accepted either as a JSON number (1500000.50) or a JSON string
// ("1500000.50"). It keeps the literal text so no precision is lost before decimal parsing.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) String() string {
	return string(a)
}
