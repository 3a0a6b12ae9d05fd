// Package jsonfmt renders example payloads as canonical JSON: two-space
// indentation, no HTML escaping and non-ASCII characters left as-is.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/blimu-dev/docs-gen/pkg/ir"
)

const indent = "  "

// Pretty renders v as indented JSON.
//
// Strings, byte slices and json.RawMessage are treated as JSON text: valid
// text is re-indented with its key order intact, anything else is returned
// unchanged so that opaque payloads still render.
func Pretty(v any) string {
	switch c := v.(type) {
	case nil:
		return "null"
	case string:
		return prettyText(c)
	case []byte:
		return prettyText(string(c))
	case json.RawMessage:
		return prettyText(string(c))
	}

	out, err := encode(normalize(v), true)
	if err != nil {
		return fmt.Sprint(v)
	}
	return out
}

// Compact renders v as single-line JSON with the same escaping rules as Pretty.
func Compact(v any) string {
	switch c := v.(type) {
	case string, []byte, json.RawMessage:
		text := Pretty(c)
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(text)); err != nil {
			return text
		}
		return buf.String()
	}
	out, err := encode(normalize(v), false)
	if err != nil {
		return fmt.Sprint(v)
	}
	return out
}

// Object renders the example values of params as an indented JSON object,
// keeping parameter order.
func Object(params []ir.Param) string {
	if len(params) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, p := range params {
		b.WriteString(indent)
		b.WriteString(quote(p.Name))
		b.WriteString(": ")
		b.WriteString(strings.ReplaceAll(Value(p.Value, true), "\n", "\n"+indent))
		if i < len(params)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

// CompactObject is the single-line form of Object.
func CompactObject(params []ir.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, quote(p.Name)+":"+Value(p.Value, false))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Value encodes v as a JSON value. Unlike Pretty, strings are encoded as
// JSON strings rather than parsed as JSON text.
func Value(v any, pretty bool) string {
	out, err := encode(normalize(v), pretty)
	if err != nil {
		return quote(fmt.Sprint(v))
	}
	return out
}

func prettyText(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return s
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(trimmed), "", indent); err != nil {
		return s
	}
	return unescapeNonASCII(buf.String())
}

func encode(v any, pretty bool) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func quote(s string) string {
	out, err := encode(s, false)
	if err != nil {
		return strconv.Quote(s)
	}
	return out
}

// normalize converts decoder output that encoding/json cannot handle, such
// as maps with interface keys, into JSON-friendly values.
func normalize(v any) any {
	switch c := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(c))
		for k, val := range c {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, val := range c {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(c))
		for i, val := range c {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// unescapeNonASCII rewrites \uXXXX escapes of non-ASCII characters inside
// JSON strings to literal UTF-8. ASCII escapes such as \" or \u0000 stay.
func unescapeNonASCII(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inString = false
			b.WriteByte(c)
		case '\\':
			if i+1 >= len(s) {
				b.WriteByte(c)
				continue
			}
			if s[i+1] != 'u' {
				b.WriteString(s[i : i+2])
				i++
				continue
			}
			r, width := decodeEscape(s[i:])
			if width == 0 {
				b.WriteString(s[i : i+2])
				i++
				continue
			}
			b.WriteRune(r)
			i += width - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// decodeEscape decodes a \uXXXX escape (or a surrogate pair) at the start
// of s. It returns width 0 when the escape should be kept verbatim.
func decodeEscape(s string) (rune, int) {
	r1, ok := hex4(s)
	if !ok {
		return 0, 0
	}
	if utf16.IsSurrogate(r1) {
		r2, ok := hex4(s[6:])
		if !ok {
			return 0, 0
		}
		r := utf16.DecodeRune(r1, r2)
		if r == utf8.RuneError {
			return 0, 0
		}
		return r, 12
	}
	if r1 < utf8.RuneSelf {
		return 0, 0
	}
	return r1, 6
}

func hex4(s string) (rune, bool) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, false
	}
	n, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
