package domain

import (
	"encoding/json"
	"testing"
)

func TestCheckRecord_EncodesKeySorted(t *testing.T) {
	empty := ""
	rec := CheckRecord{
		Err:  "invalid endpoint URL: bad/foobar/v3",
		Base: &empty,
		Name: "endpoint 3-bad-url",
		Path: "bad/foobar/v3",
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"_err":"invalid endpoint URL: bad/foobar/v3","base":"","name":"endpoint 3-bad-url","path":"bad/foobar/v3"}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestCheckRecord_SuccessOmitsErrAndBase(t *testing.T) {
	b, err := json.Marshal(CheckRecord{Name: "endpoint 2-html", Path: "https://xyz/v2"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"endpoint 2-html","path":"https://xyz/v2"}` {
		t.Fatalf("got %s", b)
	}
}

func TestResultSet_AddSplitsAndEncodesEmptyLists(t *testing.T) {
	rs := NewResultSet()
	if !rs.Empty() {
		t.Fatalf("new set should be empty")
	}
	b, _ := json.Marshal(rs)
	if string(b) != `{"failure":[],"success":[]}` {
		t.Fatalf("got %s", b)
	}

	rs.Add(CheckRecord{Name: "a", Path: "http://a"})
	rs.Add(CheckRecord{Name: "b", Path: "http://b", Err: "boom"})
	if len(rs.Success) != 1 || len(rs.Failure) != 1 || rs.Empty() {
		t.Fatalf("unexpected split: %+v", rs)
	}
}

func TestMarshalPretty_Indents(t *testing.T) {
	b, err := MarshalPretty(map[string]int{"b": 2, "a": 1})
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n    \"a\": 1,\n    \"b\": 2\n}"
	if string(b) != want {
		t.Fatalf("got %q", b)
	}
}
