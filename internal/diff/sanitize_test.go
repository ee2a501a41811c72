package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: `"key": "value",`, want: `"key": "value",`},
		{name: "unicode", in: "héllo 世界", want: "héllo 世界"},
		{name: "tab", in: "\tx", want: "    x"},
		{name: "escape", in: "\x1b[31mred", want: `\x1B[31mred`},
		{name: "carriage return", in: "dos\r", want: `dos\x0D`},
		{name: "nul and del", in: "a\x00b\x7f", want: `a\x00b\x7F`},
		{name: "invalid utf8", in: "a\xffb", want: "a�b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeLine(tc.in))
		})
	}
}

func TestRenderPretty_Sanitizes(t *testing.T) {
	hunks := GroupHunks(DiffText("a\n", "\x1b[2J\tb\r\n", Options{}), 0)
	got := RenderPretty(hunks, PrettyOptions{})
	assert.Contains(t, got, `+\x1B[2J    b\x0D`)
	assert.NotContains(t, got, "\x1b[2J")
	assert.NotContains(t, got, "\t")
}
