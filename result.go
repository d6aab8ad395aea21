package motherlib

import (
	"bytes"
	"encoding/json"
)

// Result is the outcome of a latest lookup. Exactly one side is populated:
// Content when the tag query matched a single stored object (the server
// answers with the bytes themselves), Records when it was ambiguous (the
// server answers with a JSON list of candidates, newest first).
type Result struct {
	Content []byte
	Records []Record
}

// Unique reports whether the lookup matched a single object.
func (r *Result) Unique() bool { return r.Records == nil }

// decodeResult disambiguates a latest response. The server sends no
// explicit discriminator: a body that parses as a JSON list is the record
// list, anything else is the stored content verbatim. Stored content may
// itself begin with '[', so the list decode must fully succeed before the
// body is treated as records.
func decodeResult(body []byte) (*Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return &Result{Content: body}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return &Result{Content: body}, nil
	}
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		rec, err := decodeRecord(item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return &Result{Records: records}, nil
}
