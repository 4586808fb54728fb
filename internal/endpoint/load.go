package endpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON list of endpoint objects.
func Parse(data []byte) ([]Spec, error) {
	var docs []document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode endpoints: %w", err)
	}
	return fromDocuments(docs)
}

// ParseYAML decodes a YAML list of endpoint objects.
func ParseYAML(data []byte) ([]Spec, error) {
	var docs []document
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode endpoints: %w", err)
	}
	return fromDocuments(docs)
}

// Load reads an endpoints file; .yaml and .yml files are decoded as YAML,
// everything else as JSON.
func Load(file string) ([]Spec, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read endpoints: %w", err)
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

func fromDocuments(docs []document) ([]Spec, error) {
	if docs == nil {
		return nil, fmt.Errorf("decode endpoints: expected a list")
	}
	out := make([]Spec, 0, len(docs))
	for _, d := range docs {
		s, err := fromDocument(d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func fromDocument(d document) (Spec, error) {
	format, err := parseFormat(d.Format)
	if err != nil {
		return Spec{}, fmt.Errorf("endpoint %q: %w", d.Name, err)
	}
	s := Spec{
		Name:   d.Name,
		Path:   d.Path,
		Desc:   d.Desc,
		Format: format,
		Rule:   NoRule{},
	}
	// regx wins when both are declared.
	switch {
	case d.Regx != "":
		s.Rule = NewMatchPattern(d.Regx)
	case d.Keys != "":
		s.Rule = HasKey{Key: d.Keys}
	}
	for _, child := range d.More {
		c, err := fromDocument(child)
		if err != nil {
			return Spec{}, err
		}
		s.More = append(s.More, c)
	}
	return s, nil
}

func parseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(v))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q", v)
	}
}

func toDocument(s Spec) document {
	d := document{
		Name:   s.Name,
		Path:   s.Path,
		Desc:   s.Desc,
		Format: string(s.Format),
	}
	switch r := s.Rule.(type) {
	case MatchPattern:
		d.Regx = r.Pattern
	case HasKey:
		d.Keys = r.Key
	}
	for _, c := range s.More {
		d.More = append(d.More, toDocument(c))
	}
	return d
}

// MarshalJSON writes the Spec back in its on-disk shape.
func (s Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(toDocument(s))
}
