package semdiff

import (
	"testing"

	"github.com/apiforge/semdiff/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"",
	"\n",
	"a",
	"a\n",
	"a\nb\nc\n",
	"a\nx\nc\n",
	"a\nb\nc",
	"c\nb\na\n",
	"a\na\na\nb\n",
	"1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n",
	"X\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\nY\n",
	"{\n  \"a\": 1\n}\n",
	"  indented\n\ttabbed\r\nwindows\r\n",
	"héllo\n世界\n",
}

func TestComputeDiff(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want string
	}{
		{name: "replace middle line", old: "a\nb\nc\n", new: "a\nx\nc\n", want: " a\n-b\n+x\n c\n"},
		{name: "both empty", old: "", new: "", want: ""},
		{name: "insert into empty", old: "", new: "a\n", want: "+a\n"},
		{name: "delete everything", old: "a\nb\n", new: "", want: "-a\n-b\n"},
		{name: "no trailing newline", old: "a", new: "b", want: "-a\n+b\n"},
		{name: "no trailing newline, shared prefix", old: "x\ny", new: "x\nz", want: " x\n-y\n+z\n"},
		{name: "identical", old: "same\ntext\n", new: "same\ntext\n", want: ""},
		{
			name: "context is three lines",
			old:  "1\n2\n3\n4\n5\n6\n7\n8\n9\n",
			new:  "1\n2\n3\n4\nfive\n6\n7\n8\n9\n",
			want: " 2\n 3\n 4\n-5\n+five\n 6\n 7\n 8\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeDiff(tc.old, tc.new))
		})
	}
}

func TestComputeDiff_Identity(t *testing.T) {
	for _, text := range corpus {
		assert.Equal(t, "", ComputeDiff(text, text), "%q", text)
	}
}

func TestDiffer_ScriptReconstructsInputs(t *testing.T) {
	d := New(DefaultOptions())
	for _, old := range corpus {
		for _, new := range corpus {
			script := d.Script(old, new)
			require.Equal(t, old, script.OldText())
			require.Equal(t, new, script.NewText())

			st := script.Stats()
			if old == new {
				assert.False(t, st.HasChanges())
			}
		}
	}
}

func TestComputeDiff_Symmetry(t *testing.T) {
	d := New(DefaultOptions())
	for _, a := range corpus {
		for _, b := range corpus {
			ab := d.Script(a, b).Stats()
			ba := d.Script(b, a).Stats()
			assert.Equal(t, ab.Inserted, ba.Deleted, "%q -> %q", a, b)
			assert.Equal(t, ab.Deleted, ba.Inserted, "%q -> %q", a, b)
		}
	}
}

func TestComputeSemanticDiff(t *testing.T) {
	assert.Equal(t, "", ComputeSemanticDiff(`{"a":1,"b":2}`, `{"b":2,"a":1}`))
	assert.Equal(t, "", ComputeSemanticDiff(`{"a":[1,2]}`, "{\n\t\"a\": [1, 2]\n}\n"))

	assert.Equal(t, " {\n-  \"a\": 1\n+  \"a\": 2\n }\n", ComputeSemanticDiff(`{"a":1}`, `{"a":2}`))
	assert.Equal(t, "", ComputeSemanticDiff(`{"a":1,"a":2}`, `{"a":2}`))
	assert.Equal(t, "", ComputeSemanticDiff(`{"s":"\u0041"}`, `{"s":"A"}`))
}

func TestComputeSemanticDiff_GracefulDegradation(t *testing.T) {
	// Neither side parses: plain line diff of the raw text.
	assert.Equal(t, ComputeDiff("not json", "not json either"), ComputeSemanticDiff("not json", "not json either"))
	assert.Equal(t, "", ComputeSemanticDiff("not json", "not json"))

	// One side parses: it is normalized, the other is diffed as-is.
	assert.Equal(t, "-{\n-  \"a\": 1\n-}\n+oops\n", ComputeSemanticDiff(`{"a":1}`, "oops"))
}

func TestComputeSemanticDiff_NormalizedInputsAreFixedPoints(t *testing.T) {
	pairs := [][2]string{
		{`{"b":{"d":[1,2],"c":null},"a":"x"}`, `{"a":"y","b":{"c":null,"d":[2,1]}}`},
		{`[1,2,3]`, `[1,3]`},
		{`{"a":1}`, `not json`},
	}
	n := normalize.JSON{}
	for _, p := range pairs {
		want := ComputeSemanticDiff(p[0], p[1])
		got := ComputeSemanticDiff(normalize.Normalize(n, p[0]), normalize.Normalize(n, p[1]))
		assert.Equal(t, want, got)
	}
}

func TestDiffer_Styles(t *testing.T) {
	opts := DefaultOptions()
	opts.Context = 1

	opts.Style = StyleUnified
	opts.FromName, opts.ToName = "a.json", "b.json"
	assert.Equal(t, "--- a.json\n+++ b.json\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n", New(opts).Diff("a\nb\nc\nd\n", "a\nx\nc\nd\n"))
	assert.Equal(t, "", New(opts).Diff("a\n", "a\n"))

	opts.Style = StylePretty
	pretty := New(opts).Diff("a\nb\nc\n", "a\nx\nc\n")
	assert.Contains(t, pretty, "\x1b[")
	assert.Contains(t, pretty, "-b")
	assert.Contains(t, pretty, "+x")
	assert.NotContains(t, pretty, "\n\n")
}

func TestDiffer_Context(t *testing.T) {
	opts := DefaultOptions()
	opts.Context = 0
	assert.Equal(t, "-b\n+x\n", New(opts).Diff("a\nb\nc\n", "a\nx\nc\n"))

	opts.Context = -1
	assert.Equal(t, "-b\n+x\n", New(opts).Diff("a\nb\nc\n", "a\nx\nc\n"))

	var zero Options
	assert.Equal(t, "-b\n+x\n", New(zero).Diff("a\nb\nc\n", "a\nx\nc\n"))
}

func TestDiffer_Difflib(t *testing.T) {
	opts := DefaultOptions()
	opts.Algorithm = AlgorithmDifflib
	d := New(opts)

	assert.Equal(t, " a\n-b\n+x\n c\n", d.Diff("a\nb\nc\n", "a\nx\nc\n"))
	assert.Equal(t, "", d.Diff("a\nb\n", "a\nb\n"))
	assert.Equal(t, AlgorithmDifflib, d.Options().Algorithm)
}

func TestDiffer_YAML(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatYAML
	d := New(opts)

	assert.Equal(t, "", d.SemanticDiff("b: 2\na: 1\n", "a: 1\nb:   2\n"))
	assert.Equal(t, "-a: 1\n+a: 3\n b: 2\n", d.SemanticDiff("b: 2\na: 1\n", "a: 3\nb: 2\n"))

	opts.Format = FormatAuto
	d = New(opts)
	assert.Equal(t, "", d.SemanticDiff(`{"a":1}`, `{"a": 1}`))
	assert.Equal(t, "", d.SemanticDiff("a: 1\n", "a:   1\n"))
}

func TestParseStyle(t *testing.T) {
	for _, s := range []Style{StylePlain, StyleUnified, StylePretty} {
		got, err := ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStyle("auto")
	assert.Error(t, err)
	assert.Equal(t, "Style(7)", Style(7).String())
}

func TestParseAlgorithmAndFormat(t *testing.T) {
	a, err := ParseAlgorithm("difflib")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmDifflib, a)

	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
