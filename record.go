package motherlib

import (
	"encoding/json"
	"time"
)

// Record describes one stored reference: the tags it was filed under, the
// content-derived ref, and the server-side creation time. Records are
// decoded from server responses and never mutated afterwards.
type Record struct {
	Ref     string
	Tags    []string
	Created time.Time
}

type recordWire struct {
	Ref     string   `json:"ref"`
	Tags    []string `json:"tags"`
	Created string   `json:"created"`
}

// decodeRecord parses a single record object. Timestamps are ISO-8601 with
// an explicit offset; anything else is a DecodeError. Tags are coerced to
// canonical set form.
func decodeRecord(data []byte) (Record, error) {
	var wire recordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Record{}, &DecodeError{Msg: "record", Err: err}
	}
	rec := Record{
		Ref:  wire.Ref,
		Tags: normalizeTags(wire.Tags),
	}
	if wire.Created != "" {
		created, err := time.Parse(time.RFC3339, wire.Created)
		if err != nil {
			return Record{}, &DecodeError{Msg: "record timestamp", Err: err}
		}
		rec.Created = created
	}
	return rec, nil
}

// decodeRecords parses a JSON array of records, preserving server order
// (newest first; the ordering is the server's contract, not re-sorted here).
func decodeRecords(body []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Msg: "record list", Err: err}
	}
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		rec, err := decodeRecord(item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// AuthInfo describes one OAuth2 login option offered by the server. The
// AuthURL is carried as data only; visiting it is up to the caller.
type AuthInfo struct {
	Provider     string `json:"provider"`
	ProviderName string `json:"provider_name"`
	AuthURL      string `json:"auth_url"`
}

func decodeAuthInfo(body []byte) (*AuthInfo, error) {
	var info AuthInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &DecodeError{Msg: "auth info", Err: err}
	}
	return &info, nil
}
