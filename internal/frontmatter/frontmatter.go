// Package frontmatter extracts the delimited metadata block at the top of a
// skill document. It is a deliberately small line-oriented reader, not a YAML
// parser: flat keys only, scalar or string-list values, no nesting, no
// quoting, no multi-line scalars. Unsupported constructs degrade to whatever
// scalar/list the line rules produce rather than failing.
package frontmatter

import (
	"errors"
	"strings"
)

const delimiter = "---"

var (
	// ErrNoOpening is returned when the document does not start with the
	// frontmatter delimiter. Frontmatter is absent, not merely empty.
	ErrNoOpening = errors.New("No YAML frontmatter found (missing opening ---)")
	// ErrUnclosed is returned when the opening delimiter is never matched
	// by a closing one.
	ErrUnclosed = errors.New("Unclosed YAML frontmatter (missing closing ---)")
)

// Kind discriminates the value variants a key can hold.
type Kind int

const (
	// KindScalar is a single trimmed string value.
	KindScalar Kind = iota
	// KindList is an ordered sequence of trimmed string items.
	KindList
)

// Value is the tagged variant stored under each frontmatter key.
type Value struct {
	Kind   Kind
	Scalar string
	List   []string
}

// Map is a flat mapping from frontmatter key to value.
type Map map[string]Value

// GetScalar returns the scalar stored under key, if any. List values report
// false.
func (m Map) GetScalar(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.Kind != KindScalar {
		return "", false
	}
	return v.Scalar, true
}

// Has reports whether key is present, regardless of variant.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Parse reads the frontmatter block from a full document. On success the
// returned map holds every key between the two delimiters; on failure the
// map is nil and the error describes which delimiter was missing.
func Parse(content string) (Map, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return nil, ErrNoOpening
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, ErrUnclosed
	}

	fm := Map{}
	currentKey := ""
	var currentList []string
	listOpen := false

	commitList := func() {
		if currentKey != "" && listOpen {
			fm[currentKey] = Value{Kind: KindList, List: currentList}
		}
	}

	for _, line := range lines[1:end] {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		// List item: appended to the currently open list, silently
		// dropped when no key is collecting.
		if strings.HasPrefix(stripped, "- ") {
			if listOpen {
				currentList = append(currentList, strings.TrimSpace(stripped[2:]))
			}
			continue
		}

		// Key/value: a new key is the only thing (besides end of block)
		// that terminates an open list.
		if key, value, found := strings.Cut(stripped, ":"); found {
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)

			commitList()

			currentKey = key
			if value != "" {
				fm[key] = Value{Kind: KindScalar, Scalar: value}
				listOpen = false
				currentList = nil
			} else {
				listOpen = true
				currentList = []string{}
			}
			continue
		}

		// Anything else is tolerated and ignored.
	}

	commitList()
	return fm, nil
}
