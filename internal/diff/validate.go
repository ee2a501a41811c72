package diff

import (
	"fmt"
	"strings"
)

// validate checks the Script invariants against the texts it was computed from and returns an error on the first violation.
func (s Script) validate(oldText, newText string) error {
	var oldConcat, newConcat strings.Builder
	inserting := false
	for i, c := range s {
		if c.Line == "" {
			return fmt.Errorf("change[%d]: empty line", i)
		}
		if idx := strings.Index(c.Line, defaultEOL); idx >= 0 && idx != len(c.Line)-len(defaultEOL) {
			return fmt.Errorf("change[%d]: EOL in the middle of a line", i)
		}

		switch c.Op {
		case OpEqual:
			oldConcat.WriteString(c.Line)
			newConcat.WriteString(c.Line)
			inserting = false
		case OpDelete:
			if inserting {
				return fmt.Errorf("change[%d]: OpDelete follows OpInsert in the same change run", i)
			}
			oldConcat.WriteString(c.Line)
		case OpInsert:
			newConcat.WriteString(c.Line)
			inserting = true
		default:
			return fmt.Errorf("change[%d]: unknown op %d", i, c.Op)
		}
	}

	if oldText != oldConcat.String() {
		return fmt.Errorf("script: changes do not reconstruct old text")
	}
	if newText != newConcat.String() {
		return fmt.Errorf("script: changes do not reconstruct new text")
	}
	return nil
}

// validateHunks checks that hunks are ordered, non-overlapping, and internally consistent with their headers.
func validateHunks(hunks []Hunk) error {
	prevOldEnd, prevNewEnd := 0, 0
	for hi, h := range hunks {
		if len(h.Changes) == 0 {
			return fmt.Errorf("hunk[%d]: no changes", hi)
		}
		oldCount, newCount, changed := 0, 0, 0
		for _, c := range h.Changes {
			switch c.Op {
			case OpEqual:
				oldCount++
				newCount++
			case OpDelete:
				oldCount++
				changed++
			case OpInsert:
				newCount++
				changed++
			}
		}
		if changed == 0 {
			return fmt.Errorf("hunk[%d]: only context lines", hi)
		}
		if oldCount != h.OldLines || newCount != h.NewLines {
			return fmt.Errorf("hunk[%d]: header counts -%d +%d do not match lines -%d +%d", hi, h.OldLines, h.NewLines, oldCount, newCount)
		}
		oldFirst, newFirst := h.firstLines()
		if oldFirst <= prevOldEnd || newFirst <= prevNewEnd {
			return fmt.Errorf("hunk[%d]: overlaps or precedes the previous hunk", hi)
		}
		prevOldEnd = oldFirst + h.OldLines - 1
		prevNewEnd = newFirst + h.NewLines - 1
	}
	return nil
}
