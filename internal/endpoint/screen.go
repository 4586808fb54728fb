package endpoint

import "fmt"

const noName = "There is not a name available"

// Screen splits top-level specs into those with a path and a message per
// spec without one. enough reports whether at least minItems remain.
func Screen(specs []Spec, minItems int) (valid []Spec, problems []string, enough bool) {
	for _, s := range specs {
		if s.Path != "" {
			valid = append(valid, s)
			continue
		}
		name := s.Name
		if name == "" {
			name = noName
		}
		problems = append(problems, fmt.Sprintf("There is not a path to check for: %s", name))
	}
	return valid, problems, len(valid) >= minItems
}

// Count returns the number of nodes in the tree, children included.
func Count(specs []Spec) int {
	n := 0
	for _, s := range specs {
		n += 1 + Count(s.More)
	}
	return n
}
