// Package normalize canonicalizes structured documents (JSON, YAML) so that two documents that differ only in formatting or key order produce identical text.
//
// Normalization never fails outright: a Normalizer reports whether it understood its input, and Normalize falls back to the original text when it did not.
package normalize

import (
	"fmt"
	"strings"

	"github.com/apiforge/semdiff/internal/simplelogger"
)

// Normalizer canonicalizes a document. If text is a valid document, Normalize returns its canonical form and true; otherwise it returns text unchanged and false.
type Normalizer interface {
	Normalize(text string) (string, bool)
}

// Normalize returns n's canonical form of text, or text itself if n cannot parse it. Failures are logged, not returned.
func Normalize(n Normalizer, text string) string {
	out, ok := n.Normalize(text)
	if !ok {
		simplelogger.Log("normalize: %v: not a valid document (%d bytes); using raw text", n, len(text))
		return text
	}
	return out
}

// Format names a document format.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatAuto // JSON if it parses as JSON, else YAML.
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "json", "yaml" (or "yml"), or "auto", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "auto":
		return FormatAuto, nil
	}
	return 0, fmt.Errorf("unknown format %q (want json, yaml, or auto)", s)
}

// For returns the Normalizer for f. Unknown formats get the JSON normalizer.
func For(f Format) Normalizer {
	switch f {
	case FormatYAML:
		return YAML{}
	case FormatAuto:
		return Auto{JSON{}, YAML{}}
	default:
		return JSON{}
	}
}

// Auto tries each Normalizer in order and uses the first one that accepts the text.
type Auto []Normalizer

func (a Auto) Normalize(text string) (string, bool) {
	for _, n := range a {
		if out, ok := n.Normalize(text); ok {
			return out, true
		}
	}
	return text, false
}

func (a Auto) String() string {
	names := make([]string, 0, len(a))
	for _, n := range a {
		names = append(names, fmt.Sprint(n))
	}
	return "auto(" + strings.Join(names, ",") + ")"
}
