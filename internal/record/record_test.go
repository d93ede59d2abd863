package record

import (
	"bytes"
	"io"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Set("foo", "bar")
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(&buf)
	got, err := Decode(dec)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("Decode got %+v, want %+v", got, want)
	}
}

func TestDecodeStreamOffsets(t *testing.T) {
	var buf bytes.Buffer
	records := []Record{Set("a", "1"), Set("b", "2"), Remove("a")}
	for _, r := range records {
		if err := Encode(&buf, r); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	var offsets []int64
	var got []Record
	for {
		offset := dec.InputOffset()
		r, err := Decode(dec)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		offsets = append(offsets, offset)
		got = append(got, r)
	}

	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i, r := range records {
		if got[i] != r {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], r)
		}
	}
	if offsets[0] != 0 {
		t.Errorf("first record offset = %d, want 0", offsets[0])
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			t.Errorf("offset %d (%d) did not increase past offset %d (%d)", i, offsets[i], i-1, offsets[i-1])
		}
	}
}

func TestDecodeRejectsUnknownOp(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`{"op":"bogus","key":"k"}`)

	dec := NewDecoder(&buf)
	if _, err := Decode(dec); err == nil {
		t.Error("Decode of unknown op returned no error")
	}
}
