package diff

import "fmt"

// DefaultContext is the number of unchanged lines shown before and after each group of changes.
const DefaultContext = 3

// Hunk is a contiguous window of a Script: a group of nearby changes plus up to contextSize unchanged lines on either side.
//
// OldStart/NewStart follow unified diff conventions: they are 1-based line numbers of the first line of the hunk on that side, except when that side has no lines
// (OldLines == 0 or NewLines == 0), in which case the start is the line after which the hunk applies (0 at the top of the text).
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Changes  []Change // Never empty; always contains at least one non-equal change.
}

// firstLines returns the 1-based line number at which the hunk begins on each side, even if that side is empty.
func (h Hunk) firstLines() (int, int) {
	oldFirst, newFirst := h.OldStart, h.NewStart
	if h.OldLines == 0 {
		oldFirst++
	}
	if h.NewLines == 0 {
		newFirst++
	}
	return oldFirst, newFirst
}

// GroupHunks groups the changes in script into hunks, keeping up to contextSize unchanged lines before and after each group (a negative contextSize is treated as
// 0). Two changes separated by at most 2*contextSize unchanged lines land in the same hunk, with the intervening lines shown as context; a larger gap starts a new hunk.
//
// Hunks are returned in document order and never overlap. If script has no changes, GroupHunks returns nil.
func GroupHunks(script Script, contextSize int) []Hunk {
	if contextSize < 0 {
		contextSize = 0
	}
	n := len(script)

	// oldBefore[i]/newBefore[i] count the old/new lines in script[:i].
	oldBefore := make([]int, n+1)
	newBefore := make([]int, n+1)
	for i, c := range script {
		oldBefore[i+1] = oldBefore[i]
		newBefore[i+1] = newBefore[i]
		if c.Op != OpInsert {
			oldBefore[i+1]++
		}
		if c.Op != OpDelete {
			newBefore[i+1]++
		}
	}

	var hunks []Hunk
	i := 0
	for i < n {
		if script[i].Op == OpEqual {
			i++
			continue
		}

		// Extend the group across equal runs short enough to bridge.
		first, last := i, i
		j := i + 1
		for j < n {
			if script[j].Op != OpEqual {
				last = j
				j++
				continue
			}
			k := j
			for k < n && script[k].Op == OpEqual {
				k++
			}
			if k == n || k-j > 2*contextSize {
				break
			}
			last = k
			j = k + 1
		}

		start := max(first-contextSize, 0)
		stop := min(last+contextSize+1, n)

		h := Hunk{
			OldStart: oldBefore[start],
			OldLines: oldBefore[stop] - oldBefore[start],
			NewStart: newBefore[start],
			NewLines: newBefore[stop] - newBefore[start],
			Changes:  script[start:stop:stop],
		}
		if h.OldLines > 0 {
			h.OldStart++
		}
		if h.NewLines > 0 {
			h.NewStart++
		}
		hunks = append(hunks, h)

		i = stop
	}

	if err := validateHunks(hunks); err != nil {
		panic(fmt.Errorf("GroupHunks: validate failed with %v", err))
	}

	return hunks
}
