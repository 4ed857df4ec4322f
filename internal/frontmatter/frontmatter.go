package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Delimiter is the line that opens and closes a frontmatter block.
const Delimiter = "---"

var (
	// ErrNoFrontmatter is returned by Parse when the document does not start
	// with a delimiter line.
	ErrNoFrontmatter = errors.New("document has no frontmatter")
	// ErrUnterminated is returned by Parse when the opening delimiter has no
	// matching closer.
	ErrUnterminated = errors.New("frontmatter is not terminated")
	// ErrInvalidYAML is returned by Parse when the block is not valid YAML.
	ErrInvalidYAML = errors.New("frontmatter is not valid YAML")
)

// Metadata is the subset of skill frontmatter the installer cares about.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// split separates doc into its frontmatter lines and body lines. found
// reports whether an opener was seen, closed whether it was matched.
func split(doc string) (meta, body []string, found, closed bool) {
	lines := strings.Split(doc, "\n")

	inside := false
	for i, line := range lines {
		isDelim := strings.TrimSpace(line) == Delimiter

		switch {
		case inside && isDelim:
			inside = false
			closed = true
			body = append(body, lines[i+1:]...)
			return meta, body, found, closed
		case inside:
			meta = append(meta, line)
		case isDelim && !found && len(strings.TrimSpace(strings.Join(body, ""))) == 0:
			found = true
			inside = true
			body = nil
		default:
			body = append(body, line)
		}
	}
	return meta, body, found, closed
}

// Strip returns doc with its leading frontmatter block removed and the
// result trimmed of surrounding whitespace. A document without frontmatter
// comes back trimmed but otherwise unchanged. An unterminated block swallows
// everything after the opener.
func Strip(doc string) string {
	_, body, _, _ := split(doc)
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// Has reports whether doc starts with a frontmatter opener.
func Has(doc string) bool {
	_, _, found, _ := split(doc)
	return found
}

// Parse decodes the frontmatter block of doc into Metadata and returns it
// together with the stripped body.
func Parse(doc string) (Metadata, string, error) {
	var m Metadata

	meta, body, found, closed := split(doc)
	if !found {
		return m, strings.TrimSpace(doc), ErrNoFrontmatter
	}
	if !closed {
		return m, "", ErrUnterminated
	}

	if err := yaml.Unmarshal([]byte(strings.Join(meta, "\n")), &m); err != nil {
		return m, "", fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return m, strings.TrimSpace(strings.Join(body, "\n")), nil
}
