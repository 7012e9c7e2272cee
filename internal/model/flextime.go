package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexTime is an instant that tolerates the collection's in-migration field
// ambiguity: the same field may arrive as a BSON datetime, an ISO-8601
// string, or null. Normalization happens here, at the ingestion boundary;
// the rest of the system only ever sees a time.Time plus a validity flag.
// Values that fail to parse are recorded as invalid, never as errors, so a
// malformed document can be excluded from one metric without aborting the
// rest of a computation.
type FlexTime struct {
	t     time.Time
	valid bool
}

// NewFlexTime builds a valid FlexTime from a concrete instant.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{t: t, valid: true}
}

// Time returns the normalized instant and whether it is usable.
func (f FlexTime) Time() (time.Time, bool) {
	return f.t, f.valid
}

// Valid reports whether the value was present and parseable.
func (f FlexTime) Valid() bool {
	return f.valid
}

// UnmarshalBSONValue accepts datetime, string, and null representations.
func (f *FlexTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*f = FlexTime{}
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDateTime:
		f.t = rv.Time().UTC()
		f.valid = true
	case bson.TypeString:
		parsed, err := time.Parse(time.RFC3339, rv.StringValue())
		if err != nil {
			return nil // unparseable string: leave invalid
		}
		f.t = parsed.UTC()
		f.valid = true
	}
	// Null and any other type stay invalid.
	return nil
}

// MarshalBSONValue always writes the canonical datetime representation.
func (f FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !f.valid {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(f.t)
}

// UnmarshalJSON mirrors the BSON tolerance for API payloads: RFC3339
// string, integer millisecond epoch, or null.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	*f = FlexTime{}
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil
		}
		f.t = parsed.UTC()
		f.valid = true
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		f.t = time.UnixMilli(ms).UTC()
		f.valid = true
	}
	return nil
}

// MarshalJSON writes RFC3339 or null.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.t.Format(time.RFC3339))
}
