package normalize

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// jsonOptions puts every object member and array element on its own line, indented by two spaces, with object keys sorted. Width 0 disables pretty's
// single-line arrays, whose layout would depend on line length.
var jsonOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: true,
}

// JSON normalizes JSON documents. Any JSON value is accepted, including a bare scalar. The canonical form always ends with "\n".
//
// Strings and keys are re-escaped minimally, so "\u0041" and "A" are the same. If an object repeats a key, the last value wins. Number literals are kept exactly
// as written: 1.0 and 1 stay distinct.
type JSON struct{}

func (JSON) Normalize(text string) (string, bool) {
	if !gjson.Valid(text) {
		return text, false
	}
	compact := appendJSON(nil, gjson.Parse(text))
	return string(pretty.PrettyOptions(compact, jsonOptions)), true
}

func (JSON) String() string { return "json" }

// appendJSON appends v to b as compact JSON.
func appendJSON(b []byte, v gjson.Result) []byte {
	switch {
	case v.IsObject():
		var keys []string
		vals := make(map[string]gjson.Result)
		v.ForEach(func(k, val gjson.Result) bool {
			key := k.String()
			if _, ok := vals[key]; !ok {
				keys = append(keys, key)
			}
			vals[key] = val
			return true
		})
		b = append(b, '{')
		for i, key := range keys {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendJSONString(b, key)
			b = append(b, ':')
			b = appendJSON(b, vals[key])
		}
		return append(b, '}')
	case v.IsArray():
		b = append(b, '[')
		first := true
		v.ForEach(func(_, val gjson.Result) bool {
			if !first {
				b = append(b, ',')
			}
			first = false
			b = appendJSON(b, val)
			return true
		})
		return append(b, ']')
	case v.Type == gjson.String:
		return appendJSONString(b, v.String())
	default:
		return append(b, v.Raw...)
	}
}

// appendJSONString appends s as a quoted JSON string. Only '"', '\\', and control characters are escaped.
func appendJSONString(b []byte, s string) []byte {
	const hex = "0123456789abcdef"
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b = append(b, '\\', c)
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			if c < 0x20 {
				b = append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			} else {
				b = append(b, c)
			}
		}
	}
	return append(b, '"')
}
