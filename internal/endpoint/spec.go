package endpoint

import (
	"regexp"
)

// Format hints what kind of body an endpoint serves.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// Rule is the content assertion of a node: NoRule, MatchPattern or HasKey.
type Rule interface {
	rule()
}

// NoRule passes on any non-empty body.
type NoRule struct{}

// MatchPattern passes when Pattern is found anywhere in the raw body.
type MatchPattern struct {
	Pattern string
	re      *regexp.Regexp
}

// HasKey passes when the body is a JSON object holding Key at the top level.
type HasKey struct {
	Key string
}

func (NoRule) rule()       {}
func (MatchPattern) rule() {}
func (HasKey) rule()       {}

// NewMatchPattern compiles pattern. A pattern that is not a valid
// expression is matched literally.
func NewMatchPattern(pattern string) MatchPattern {
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = regexp.MustCompile(regexp.QuoteMeta(pattern))
	}
	return MatchPattern{Pattern: pattern, re: re}
}

func (m MatchPattern) Match(text string) bool {
	if m.re == nil {
		return NewMatchPattern(m.Pattern).re.MatchString(text)
	}
	return m.re.MatchString(text)
}

// Spec is one node of the monitored tree. It is read-only once loaded.
type Spec struct {
	Name   string
	Path   string
	Desc   string
	Format Format
	Rule   Rule
	More   []Spec
}

// document is the on-disk shape of a Spec.
type document struct {
	Name   string     `json:"name,omitempty" yaml:"name,omitempty"`
	Path   string     `json:"path,omitempty" yaml:"path,omitempty"`
	Desc   string     `json:"desc,omitempty" yaml:"desc,omitempty"`
	Format string     `json:"format,omitempty" yaml:"format,omitempty"`
	Regx   string     `json:"regx,omitempty" yaml:"regx,omitempty"`
	Keys   string     `json:"keys,omitempty" yaml:"keys,omitempty"`
	More   []document `json:"more,omitempty" yaml:"more,omitempty"`
}
