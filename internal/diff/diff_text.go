package diff

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	difflib "github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText diffs oldText to newText line by line, returning an edit script. Lines keep their trailing \n.
func DiffText(oldText, newText string, opts Options) Script {
	script := DiffLines(SplitLines(oldText), SplitLines(newText), opts)

	if err := script.validate(oldText, newText); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}

	return script
}

// DiffLines diffs two line sequences. Lines are compared as opaque strings with ==; a line's terminator (if any) is part of the line.
//
// Every line of oldLines appears in exactly one OpEqual or OpDelete change, and every line of newLines in exactly one OpEqual or OpInsert change, in order.
// With AlgorithmMyers and no Timeout the script is minimal (fewest inserted+deleted lines) and deterministic.
func DiffLines(oldLines, newLines []string, opts Options) Script {
	if opts.Algorithm == AlgorithmDifflib {
		return difflibLines(oldLines, newLines)
	}
	if script, ok := myersLines(oldLines, newLines, opts.Timeout); ok {
		return script
	}
	// Too many distinct lines to intern as runes.
	return difflibLines(oldLines, newLines)
}

// myersLines interns each distinct line as a rune and runs diffmatchpatch over the rune slices. It returns false if there are more distinct lines than usable runes.
func myersLines(oldLines, newLines []string, timeout time.Duration) (Script, bool) {
	// lineArray[0] is unused so no line maps to rune 0.
	lineArray := []string{""}
	lineHash := make(map[string]rune)

	encode := func(lines []string) ([]rune, bool) {
		runes := make([]rune, len(lines))
		for i, ln := range lines {
			r, ok := lineHash[ln]
			if !ok {
				r, ok = lineRune(len(lineArray))
				if !ok {
					return nil, false
				}
				lineHash[ln] = r
				lineArray = append(lineArray, ln)
			}
			runes[i] = r
		}
		return runes, true
	}

	rOld, ok := encode(oldLines)
	if !ok {
		return nil, false
	}
	rNew, ok := encode(newLines)
	if !ok {
		return nil, false
	}

	dmp := diffmatchpatch.New()
	// A zero timeout disables both the deadline and the half-match speedup, which can return non-minimal diffs.
	dmp.DiffTimeout = timeout
	lineDiffs := dmp.DiffMainRunes(rOld, rNew, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	// Decode rune-string back to lines using the lineArray mapping.
	decode := func(s string) []string {
		if s == "" {
			return nil
		}
		out := make([]string, 0, len(s))
		for _, r := range s {
			idx := runeLineIndex(r)
			if idx > 0 && idx < len(lineArray) {
				out = append(out, lineArray[idx])
			}
		}
		return out
	}

	script := make(Script, 0, len(oldLines)+len(newLines))
	var dels []string
	var ins []string

	flush := func() {
		for _, ln := range dels {
			script = append(script, Change{Op: OpDelete, Line: ln})
		}
		for _, ln := range ins {
			script = append(script, Change{Op: OpInsert, Line: ln})
		}
		dels = nil
		ins = nil
	}

	for _, d := range lineDiffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			for _, ln := range decode(d.Text) {
				script = append(script, Change{Op: OpEqual, Line: ln})
			}
		case diffmatchpatch.DiffDelete:
			dels = append(dels, decode(d.Text)...)
		case diffmatchpatch.DiffInsert:
			ins = append(ins, decode(d.Text)...)
		}
	}
	flush()

	return script, true
}

// Interned line indexes skip the UTF-16 surrogate block: those code points are not valid runes and would not survive the []rune -> string conversions inside
// diffmatchpatch.
const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// lineRune maps a line index to a rune. It returns false if idx has no rune.
func lineRune(idx int) (rune, bool) {
	if idx < 0 || idx > unicode.MaxRune {
		return 0, false
	}
	r := rune(idx)
	if r >= surrogateMin {
		r += surrogateMax - surrogateMin + 1
	}
	if r > unicode.MaxRune {
		return 0, false
	}
	return r, true
}

// runeLineIndex is the inverse of lineRune.
func runeLineIndex(r rune) int {
	if r > surrogateMax {
		r -= surrogateMax - surrogateMin + 1
	}
	return int(r)
}

// difflibLines diffs with difflib's SequenceMatcher. Auto-junk is off so popular lines (blank lines, closing braces) can still anchor matches.
func difflibLines(oldLines, newLines []string) Script {
	m := difflib.NewMatcherWithJunk(oldLines, newLines, false, nil)

	script := make(Script, 0, len(oldLines)+len(newLines))
	emit := func(op Op, lines []string) {
		for _, ln := range lines {
			script = append(script, Change{Op: op, Line: ln})
		}
	}

	for _, oc := range m.GetOpCodes() {
		switch oc.Tag {
		case 'e':
			emit(OpEqual, oldLines[oc.I1:oc.I2])
		case 'd':
			emit(OpDelete, oldLines[oc.I1:oc.I2])
		case 'i':
			emit(OpInsert, newLines[oc.J1:oc.J2])
		case 'r':
			emit(OpDelete, oldLines[oc.I1:oc.I2])
			emit(OpInsert, newLines[oc.J1:oc.J2])
		}
	}
	return script
}

// SplitLines splits text into lines, keeping the \n on each line. The last line has no \n if text does not end with one. An empty text has no lines.
func SplitLines(text string) []string {
	return splitPreserveEOL(text, defaultEOL)
}

// splitPreserveEOL splits text by eol and preserves the eol on each line, except possibly the last.
func splitPreserveEOL(text, eol string) []string {
	if text == "" {
		return nil
	}
	if eol == "" {
		eol = defaultEOL
	}
	var lines []string
	for {
		idx := strings.Index(text, eol)
		if idx == -1 {
			if text != "" {
				lines = append(lines, text)
			}
			break
		}
		lines = append(lines, text[:idx+len(eol)])
		text = text[idx+len(eol):]
		if text == "" {
			break
		}
	}
	return lines
}

// trimEOL removes a trailing eol from a line if present.
func trimEOL(line, eol string) (string, bool) {
	if eol != "" && strings.HasSuffix(line, eol) {
		return line[:len(line)-len(eol)], true
	}
	return line, false
}
