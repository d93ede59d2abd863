// Package record defines Ember's command record: the unit that is both
// appended to a log segment and sent as one frame over the wire. Records
// are encoded as streaming JSON objects, each followed by a newline.
package record

import (
	"encoding/json"
	"io"

	"github.com/sagararora86/ember/pkg/kvserrors"
)

// Op names the kind of command a Record represents.
type Op string

const (
	// OpSet records an assignment of Value to Key.
	OpSet Op = "set"
	// OpRemove records a deletion of Key.
	OpRemove Op = "rm"
)

// Record is the persisted/wire representation of a Set or Remove command.
type Record struct {
	Op    Op     `json:"op"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Set builds a Set record.
func Set(key, value string) Record {
	return Record{Op: OpSet, Key: key, Value: value}
}

// Remove builds a Remove record.
func Remove(key string) Record {
	return Record{Op: OpRemove, Key: key}
}

// Encode writes r to w as one JSON object. Consecutive calls against the
// same writer produce a stream of concatenated, self-delimiting records.
func Encode(w io.Writer, r Record) error {
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return kvserrors.Encoding(err, "encode command record")
	}
	return nil
}

// NewDecoder returns a json.Decoder over r suitable for streaming Decode
// calls via Decode below. Callers that need to know a record's start
// offset (replay) should read dec.InputOffset() immediately before calling
// Decode — InputOffset reports bytes consumed so far, which is the end of
// the previous record. Only the newline Encode writes after each record
// lies between that point and the next record, and Decode skips it.
func NewDecoder(r io.Reader) *json.Decoder {
	return json.NewDecoder(r)
}

// Decode consumes exactly one Record from dec.
func Decode(dec *json.Decoder) (Record, error) {
	var r Record
	if err := dec.Decode(&r); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, kvserrors.Encoding(err, "decode command record")
	}
	if r.Op != OpSet && r.Op != OpRemove {
		return Record{}, kvserrors.Protocol("unknown command record op").WithKey(r.Key)
	}
	return r, nil
}
