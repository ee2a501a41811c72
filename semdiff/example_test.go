package semdiff_test

import (
	"fmt"

	"github.com/apiforge/semdiff/semdiff"
)

func ExampleComputeDiff() {
	fmt.Print(semdiff.ComputeDiff("a\nb\nc\n", "a\nx\nc\n"))
	// Output:
	//  a
	// -b
	// +x
	//  c
}

func ExampleComputeSemanticDiff() {
	oldDoc := `{"name":"semdiff","tags":["diff"]}`
	newDoc := `{"tags":["diff","json"],"name":"semdiff"}`

	fmt.Print(semdiff.ComputeSemanticDiff(oldDoc, newDoc))
	// Output:
	//  {
	//    "name": "semdiff",
	//    "tags": [
	// -    "diff"
	// +    "diff",
	// +    "json"
	//    ]
	//  }
}

func ExampleDiffer_Diff() {
	opts := semdiff.DefaultOptions()
	opts.Style = semdiff.StyleUnified
	opts.Context = 1
	opts.FromName, opts.ToName = "a.txt", "b.txt"

	fmt.Print(semdiff.New(opts).Diff("one\ntwo\nthree\nfour\n", "one\n2\nthree\nfour\n"))
	// Output:
	// --- a.txt
	// +++ b.txt
	// @@ -1,3 +1,3 @@
	//  one
	// -two
	// +2
	//  three
}
