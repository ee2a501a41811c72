// Package diff computes line-based edit scripts between an "old" and a "new" text, groups them into hunks with surrounding context, and renders them.
//
// Representation: A Script is an ordered slice of Changes, one per line. Each change has an Op:
//   - OpEqual: the line is present in both texts
//   - OpDelete: the line is present only in the old text
//   - OpInsert: the line is present only in the new text
//
// Lines include the trailing '\n' if it was present in the input; the last line of a text may lack it.
//
// Invariants:
//   - concat(Equal and Delete lines) == old text
//   - concat(Equal and Insert lines) == new text
//   - within a run of changes, deletes come before inserts
//
// Getting a diff: Use DiffText (or DiffLines for pre-split input), then GroupHunks, then a renderer:
//
//	script := diff.DiffText(oldText, newText, diff.Options{})
//	hunks := diff.GroupHunks(script, diff.DefaultContext)
//	fmt.Print(diff.Render(hunks))
//
// Rendering:
//   - Render emits a simplified unified diff: sign-prefixed lines only, no headers and no hunk separators.
//   - RenderUnified emits a conventional unified diff with ---/+++ and @@ headers.
//   - RenderPretty emits a colorized view for terminals.
//
// Algorithms: AlgorithmMyers (default) produces a minimal script. AlgorithmDifflib uses Ratcliff/Obershelp matching, which is not guaranteed minimal.
package diff
