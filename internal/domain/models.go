package domain

import (
	"encoding/json"
	"time"
)

// CheckRecord is the outcome of one node. Err is empty on success.
// Fields are declared in key order so encoded records come out key-sorted.
type CheckRecord struct {
	Err  string  `json:"_err,omitempty"`
	Base *string `json:"base,omitempty"` // set only for structural URL failures
	Name string  `json:"name"`
	Path string  `json:"path"`
}

func (r CheckRecord) OK() bool { return r.Err == "" }

// ResultSet is the flat report of one run, in visitation order.
type ResultSet struct {
	Failure []CheckRecord `json:"failure"`
	Success []CheckRecord `json:"success"`
}

func NewResultSet() *ResultSet {
	return &ResultSet{
		Failure: make([]CheckRecord, 0),
		Success: make([]CheckRecord, 0),
	}
}

func (rs *ResultSet) Add(r CheckRecord) {
	if r.OK() {
		rs.Success = append(rs.Success, r)
		return
	}
	rs.Failure = append(rs.Failure, r)
}

func (rs *ResultSet) Empty() bool {
	return rs == nil || (len(rs.Failure) == 0 && len(rs.Success) == 0)
}

// ValidatedPath is a node that passed URL validation and returned a body.
type ValidatedPath struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Summary is the human-facing verdict of a run.
type Summary struct {
	Message string `json:"message"`
	Subject string `json:"subject,omitempty"`
	Success bool   `json:"success"`
}

type RunID string

// Run is one persisted check cycle.
type Run struct {
	ID             RunID           `json:"id"`
	Results        *ResultSet      `json:"results"`
	StartedAt      time.Time       `json:"started_at"`
	Summary        Summary         `json:"summary"`
	ValidatedPaths []ValidatedPath `json:"validated_paths"`
}

// NewRunID formats t the way archived results are named: 20060102_150405.
func NewRunID(t time.Time) RunID {
	return RunID(t.UTC().Format("20060102_150405"))
}

// MarshalPretty encodes v with four-space indentation. Struct fields are
// declared in key order and maps are sorted by encoding/json, so the
// output is key-sorted.
func MarshalPretty(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "    ")
}
