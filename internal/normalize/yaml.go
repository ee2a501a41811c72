package normalize

import (
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML normalizes YAML streams. Each document's root must be a mapping or a sequence: a bare scalar is rejected, since almost any prose parses as a YAML string.
// The canonical form uses two-space indentation and sorted mapping keys; anchors and aliases are expanded and comments dropped. Documents are separated by "---".
type YAML struct{}

func (YAML) Normalize(text string) (string, bool) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var docs []any
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return text, false
		}

		root := &node
		if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
			root = root.Content[0]
		}
		if root.Kind != yaml.MappingNode && root.Kind != yaml.SequenceNode {
			return text, false
		}

		var v any
		if err := node.Decode(&v); err != nil {
			return text, false
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return text, false
	}

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return text, false
		}
	}
	if err := enc.Close(); err != nil {
		return text, false
	}
	return b.String(), true
}

func (YAML) String() string { return "yaml" }
