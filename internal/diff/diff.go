package diff

import (
	"fmt"
	"strings"
	"time"
)

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Sign returns the character that prefixes a line with this operation in a rendered diff: ' ' for OpEqual, '+' for OpInsert, and '-' for OpDelete.
func (op Op) Sign() byte {
	switch op {
	case OpInsert:
		return '+'
	case OpDelete:
		return '-'
	default:
		return ' '
	}
}

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is a single line of an edit script. Line usually ends with (and includes) \n, unless it is the last line of an input that had no trailing \n.
type Change struct {
	Op   Op     // OpEqual: Line is in both texts. OpDelete: only in the old text. OpInsert: only in the new text.
	Line string // The entire line, including its terminator if present.
}

// Script is an ordered edit script that transforms an old text into a new text.
//
// Invariants:
//   - concat(Line of OpEqual and OpDelete changes) == old text
//   - concat(Line of OpEqual and OpInsert changes) == new text
//   - Within a run of non-equal changes, all OpDelete changes come before all OpInsert changes.
type Script []Change

// Stats counts the lines of s by operation.
type Stats struct {
	Equal    int
	Inserted int
	Deleted  int
}

// HasChanges reports whether any line was inserted or deleted.
func (st Stats) HasChanges() bool {
	return st.Inserted > 0 || st.Deleted > 0
}

// Stats returns per-operation line counts for s.
func (s Script) Stats() Stats {
	var st Stats
	for _, c := range s {
		switch c.Op {
		case OpEqual:
			st.Equal++
		case OpInsert:
			st.Inserted++
		case OpDelete:
			st.Deleted++
		}
	}
	return st
}

// OldText reconstructs the old text from s.
func (s Script) OldText() string {
	return s.join(OpDelete)
}

// NewText reconstructs the new text from s.
func (s Script) NewText() string {
	return s.join(OpInsert)
}

func (s Script) join(side Op) string {
	n := 0
	for _, c := range s {
		if c.Op == OpEqual || c.Op == side {
			n += len(c.Line)
		}
	}
	buf := make([]byte, 0, n)
	for _, c := range s {
		if c.Op == OpEqual || c.Op == side {
			buf = append(buf, c.Line...)
		}
	}
	return string(buf)
}

// Algorithm selects how DiffLines matches lines.
type Algorithm int

const (
	// AlgorithmMyers computes a minimal edit script with Myers' O(ND) algorithm (github.com/sergi/go-diff).
	AlgorithmMyers Algorithm = iota

	// AlgorithmDifflib uses Ratcliff/Obershelp matching (github.com/pmezard/go-difflib), the algorithm behind Python's difflib. It tends to produce diffs that read
	// well, but they are not guaranteed to be minimal.
	AlgorithmDifflib
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmMyers:
		return "myers"
	case AlgorithmDifflib:
		return "difflib"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses an algorithm name as returned by Algorithm.String, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "myers":
		return AlgorithmMyers, nil
	case "difflib":
		return AlgorithmDifflib, nil
	}
	return 0, fmt.Errorf("unknown diff algorithm %q (want myers or difflib)", s)
}

// Options controls DiffLines and DiffText. The zero value selects an exact Myers diff.
type Options struct {
	Algorithm Algorithm

	// Timeout bounds the time spent by AlgorithmMyers. When it expires, the remaining region is reported as a delete+insert pair, so the script stays valid but may not
	// be minimal. 0 means no limit, which also keeps the output deterministic.
	Timeout time.Duration
}

// defaultEOL is the EOL ('\n').
//
// This constant exists because the design may change to allow configurable EOLs (maybe Windows needs "\r\n"), and this provides a nice hook to find callsites.
const defaultEOL = "\n"
