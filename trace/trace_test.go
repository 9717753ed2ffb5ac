package trace

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleRecord() Record {
	return Record{
		Context:    "3f1c0e7a-0000-4000-8000-000000000001",
		Name:       "len",
		Convention: "o",
		ArgKinds:   []string{"handle:list", "handle:int"},
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).UnixNano(),
		Duration:   int64(1500 * time.Microsecond),
	}
}

func TestRecord_CBORRoundTrip(t *testing.T) {
	r := sampleRecord()
	r.Fault = "arity"
	r.Message = "expected 2 arguments but got 3"

	data, err := MarshalRecord(&r)
	if err != nil {
		t.Fatalf("MarshalRecord: %v", err)
	}
	got, err := UnmarshalRecord(data)
	if err != nil {
		t.Fatalf("UnmarshalRecord: %v", err)
	}

	if got.Name != r.Name || got.Convention != r.Convention || got.Context != r.Context {
		t.Errorf("identity mismatch: got %+v", got)
	}
	if got.StartedAt != r.StartedAt || got.Duration != r.Duration {
		t.Errorf("timing mismatch: got %d/%d", got.StartedAt, got.Duration)
	}
	if len(got.ArgKinds) != 2 || got.ArgKinds[1] != "handle:int" {
		t.Errorf("ArgKinds = %v", got.ArgKinds)
	}
	if !got.Failed() || got.Fault != "arity" {
		t.Errorf("Fault = %q, want arity", got.Fault)
	}
}

func TestRecord_CanonicalEncoding(t *testing.T) {
	r := sampleRecord()
	a, err := MarshalRecord(&r)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalRecord(&r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding is not deterministic")
	}
}

func TestUnmarshalRecord_Invalid(t *testing.T) {
	if _, err := UnmarshalRecord([]byte{0xff, 0x00}); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestRecordString(t *testing.T) {
	r := sampleRecord()
	s := r.String()
	if !strings.Contains(s, "len(handle:list, handle:int)") || !strings.Contains(s, "[o]") {
		t.Errorf("String() = %q", s)
	}
	r.Fault, r.Message = "type", "bad argument"
	if !strings.HasSuffix(r.String(), "type: bad argument") {
		t.Errorf("String() = %q", r.String())
	}
}

func TestMemorySink(t *testing.T) {
	var s MemorySink
	for i := 0; i < 3; i++ {
		if err := s.Emit(sampleRecord()); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(s.Records()); n != 3 {
		t.Errorf("len(Records()) = %d, want 3", n)
	}
	s.Reset()
	if n := len(s.Records()); n != 0 {
		t.Errorf("len(Records()) after Reset = %d, want 0", n)
	}
}

func TestJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.db")
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()

	ok := sampleRecord()
	failed := sampleRecord()
	failed.Name = "getattr"
	failed.Fault = "validation"
	failed.Message = "returned NULL without setting an error"

	for _, r := range []Record{ok, failed, ok} {
		if err := j.Emit(r); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}

	all, err := j.Records(Query{})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[1].Name != "getattr" {
		t.Errorf("records out of order: %v", all[1].Name)
	}

	failures, err := j.Records(Query{FailedOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 1 || failures[0].Message != failed.Message {
		t.Errorf("failures = %+v", failures)
	}

	byName, err := j.Records(Query{Name: "len", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(byName) != 1 || byName[0].Name != "len" {
		t.Errorf("byName = %+v", byName)
	}
}

func TestJournal_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Emit(sampleRecord()); err != nil {
		t.Fatal(err)
	}
	j.Close()

	j, err = OpenJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()
	recs, err := j.Records(Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("len(recs) = %d after reopen, want 1", len(recs))
	}
}
