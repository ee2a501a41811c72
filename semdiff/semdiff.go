// Package semdiff renders line diffs between two texts, and "semantic" diffs between two structured documents that are canonicalized before diffing so that
// formatting and key order do not show up as changes.
//
// The two entry points cover the common case:
//
//	semdiff.ComputeDiff(oldText, newText)          // plain line diff, 3 lines of context
//	semdiff.ComputeSemanticDiff(oldJSON, newJSON)  // same, after JSON normalization
//
// Both return "" when there is nothing to report. For other context sizes, algorithms, output styles, or document formats, build a Differ with New.
package semdiff

import (
	"fmt"
	"strings"
	"time"

	"github.com/apiforge/semdiff/internal/diff"
	"github.com/apiforge/semdiff/internal/normalize"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = diff.DefaultContext

type (
	Op        = diff.Op
	Change    = diff.Change
	Script    = diff.Script
	Stats     = diff.Stats
	Algorithm = diff.Algorithm
	Format    = normalize.Format
)

const (
	OpEqual  = diff.OpEqual
	OpInsert = diff.OpInsert
	OpDelete = diff.OpDelete

	AlgorithmMyers   = diff.AlgorithmMyers
	AlgorithmDifflib = diff.AlgorithmDifflib

	FormatJSON = normalize.FormatJSON
	FormatYAML = normalize.FormatYAML
	FormatAuto = normalize.FormatAuto
)

// ParseAlgorithm parses "myers" or "difflib".
func ParseAlgorithm(s string) (Algorithm, error) {
	return diff.ParseAlgorithm(s)
}

// ParseFormat parses "json", "yaml", or "auto".
func ParseFormat(s string) (Format, error) {
	return normalize.ParseFormat(s)
}

// Style selects how a diff is rendered.
type Style int

const (
	// StylePlain concatenates sign-prefixed lines (' ', '+', '-') with no headers or separators. Lines keep their own terminators; a last line without one is ended with "\n".
	StylePlain Style = iota

	// StyleUnified is a conventional unified diff: ---/+++ file headers and an @@ header per hunk.
	StyleUnified

	// StylePretty colors deletions and insertions with ANSI escapes for display in a terminal.
	StylePretty
)

func (s Style) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleUnified:
		return "unified"
	case StylePretty:
		return "pretty"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle parses "plain", "unified", or "pretty", case-insensitively.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return StylePlain, nil
	case "unified":
		return StyleUnified, nil
	case "pretty":
		return StylePretty, nil
	}
	return 0, fmt.Errorf("unknown style %q (want plain, unified, or pretty)", s)
}

// Options configures a Differ. The zero value is valid but shows no context lines; start from DefaultOptions instead.
type Options struct {
	Context   int           // unchanged lines around each change; negative means 0
	Algorithm Algorithm     // line matching algorithm
	Timeout   time.Duration // bound on Myers' search; 0 means exact and deterministic
	Style     Style         // output style
	Format    Format        // document format for SemanticDiff

	FromName string // StyleUnified only: name in the --- header
	ToName   string // StyleUnified only: name in the +++ header

	Width int // StylePretty only: truncate lines to this display width (0 means no limit)
}

// DefaultOptions returns the options used by ComputeDiff and ComputeSemanticDiff.
func DefaultOptions() Options {
	return Options{
		Context:   DefaultContext,
		Algorithm: AlgorithmMyers,
		Style:     StylePlain,
		Format:    FormatJSON,
		FromName:  "old",
		ToName:    "new",
	}
}

// Differ computes and renders diffs with fixed Options. A Differ holds no mutable state and may be used concurrently.
type Differ struct {
	opts       Options
	normalizer normalize.Normalizer
}

// New returns a Differ for opts.
func New(opts Options) *Differ {
	return &Differ{opts: opts, normalizer: normalize.For(opts.Format)}
}

// Options returns the options d was created with.
func (d *Differ) Options() Options {
	return d.opts
}

// Script returns the line-level edit script from oldText to newText.
func (d *Differ) Script(oldText, newText string) Script {
	return diff.DiffText(oldText, newText, diff.Options{Algorithm: d.opts.Algorithm, Timeout: d.opts.Timeout})
}

// Diff renders the diff from oldText to newText in d's style. It returns "" if the texts are equal.
func (d *Differ) Diff(oldText, newText string) string {
	hunks := diff.GroupHunks(d.Script(oldText, newText), d.opts.Context)

	switch d.opts.Style {
	case StyleUnified:
		return diff.RenderUnified(hunks, d.opts.FromName, d.opts.ToName)
	case StylePretty:
		return diff.RenderPretty(hunks, diff.PrettyOptions{Width: d.opts.Width})
	default:
		return diff.Render(hunks)
	}
}

// SemanticDiff normalizes oldText and newText independently in d's Format and diffs the results. A side that does not parse is diffed as-is, so SemanticDiff never
// fails; it just degrades to a plain line diff for that side.
func (d *Differ) SemanticDiff(oldText, newText string) string {
	return d.Diff(normalize.Normalize(d.normalizer, oldText), normalize.Normalize(d.normalizer, newText))
}

var defaultDiffer = New(DefaultOptions())

// ComputeDiff returns the plain line diff from oldText to newText with DefaultContext lines of context: for each hunk, each line prefixed with '-' (deleted), '+'
// (inserted), or ' ' (unchanged), keeping line terminators. Identical texts give "".
func ComputeDiff(oldText, newText string) string {
	return defaultDiffer.Diff(oldText, newText)
}

// ComputeSemanticDiff is ComputeDiff after normalizing both texts as JSON (sorted keys, two-space indentation). Texts that are not valid JSON are diffed verbatim.
func ComputeSemanticDiff(oldText, newText string) string {
	return defaultDiffer.SemanticDiff(oldText, newText)
}
