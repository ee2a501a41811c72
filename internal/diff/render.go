package diff

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render returns the simplified unified rendering of hunks: each change, in order, as its sign (' ', '+', or '-') followed by the line verbatim (including its
// terminator). There are no file headers, no @@ hunk headers, and no separators between hunks. A line without a terminator (the last line of a text) gets a
// "\n", so every rendered line ends in one and the next sign always starts a new line.
//
// If hunks is empty, the result is the empty string.
func Render(hunks []Hunk) string {
	n := 0
	for _, h := range hunks {
		for _, c := range h.Changes {
			n += 2 + len(c.Line)
		}
	}

	var b strings.Builder
	b.Grow(n)
	for _, h := range hunks {
		for _, c := range h.Changes {
			b.WriteByte(c.Op.Sign())
			b.WriteString(c.Line)
			if !strings.HasSuffix(c.Line, defaultEOL) {
				b.WriteString(defaultEOL)
			}
		}
	}
	return b.String()
}

// RenderUnified returns a conventional unified diff of hunks: "--- fromFilename" and "+++ toFilename" headers, then each hunk with an "@@ -l,s +l,s @@" header.
// Lines without a terminator are followed by the "\ No newline at end of file" marker, so every output line ends in \n.
//
// If hunks is empty, the result is the empty string (no headers).
func RenderUnified(hunks []Hunk, fromFilename string, toFilename string) string {
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", fromFilename, toFilename)
	for _, h := range hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, c := range h.Changes {
			b.WriteByte(c.Op.Sign())
			b.WriteString(c.Line)
			if !strings.HasSuffix(c.Line, defaultEOL) {
				b.WriteString(defaultEOL)
				b.WriteString(`\ No newline at end of file`)
				b.WriteString(defaultEOL)
			}
		}
	}
	return b.String()
}

// PrettyOptions controls RenderPretty.
type PrettyOptions struct {
	// Width, if > 0, truncates each output line (sign included) to this many terminal cells. Truncated lines end with "…".
	Width int
}

// RenderPretty returns a human-oriented, colorized rendering of hunks. Each line is prefixed like Render: " " for context, "-" for deletions, and "+" for insertions.
// Deleted lines have a pink background and inserted lines a green one. Consecutive hunks are separated by a dim "…" line.
//
// Lines are rendered without their trailing newline, and the returned string uses "\n" as the line separator. Line content is sanitized for the terminal: tabs are
// expanded and control characters are shown escaped (ex: ESC as \x1B). If hunks is empty, the result is the empty string.
//
// The output contains ANSI 256-color escape sequences and is intended for terminals; it is not a machine-readable diff. For that, use Render or RenderUnified.
func RenderPretty(hunks []Hunk, opts PrettyOptions) string {
	// Colors (ANSI) for pretty output.
	const (
		reset     = "\x1b[0m"
		blackFG   = "\x1b[30m"
		dim       = "\x1b[2m"
		pinkLine  = "\x1b[48;5;224m" // light pink for deleted lines
		greenLine = "\x1b[48;5;194m" // light green for added lines
	)

	fit := func(sign byte, line string) string {
		core, _ := trimEOL(line, defaultEOL)
		s := string(sign) + sanitizeLine(core)
		if opts.Width > 0 && runewidth.StringWidth(s) > opts.Width {
			s = runewidth.Truncate(s, opts.Width, "…")
		}
		return s
	}

	var out []string
	for hi, h := range hunks {
		if hi > 0 {
			out = append(out, dim+"…"+reset)
		}
		for _, c := range h.Changes {
			switch c.Op {
			case OpEqual:
				out = append(out, fit(' ', c.Line))
			case OpDelete:
				out = append(out, blackFG+pinkLine+fit('-', c.Line)+reset)
			case OpInsert:
				out = append(out, blackFG+greenLine+fit('+', c.Line)+reset)
			}
		}
	}

	return strings.Join(out, defaultEOL)
}
