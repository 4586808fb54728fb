package checker

import (
	"encoding/json"
	"fmt"

	"github.com/hamed0406/endpointwatch/internal/endpoint"
)

const (
	errInvalidURL = "invalid endpoint URL: %s"
	errNoData     = "no response data from URL: %s"
	errPattern    = "cannot find `%s` in response data from: %s"
	errKey        = "missing value by key `%s` in response data from: %s"
	errCycle      = "cyclic endpoint reference: %s"
)

// Validate applies rule to a non-empty body fetched from path. It returns
// the failure message, or "" when the rule holds.
func Validate(body string, rule endpoint.Rule, path string) string {
	switch r := rule.(type) {
	case endpoint.MatchPattern:
		if !r.Match(body) {
			return fmt.Sprintf(errPattern, r.Pattern, path)
		}
	case endpoint.HasKey:
		if !hasTopLevelKey(body, r.Key) {
			return fmt.Sprintf(errKey, r.Key, path)
		}
	}
	return ""
}

// hasTopLevelKey is true when body is a JSON object holding key, whatever
// the value.
func hasTopLevelKey(body, key string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return false
	}
	_, ok := obj[key]
	return ok
}
