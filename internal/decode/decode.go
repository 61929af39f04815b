// Package decode turns free-form generative-model output into JSON values.
// Model responses are frequently wrapped in markdown fences, padded with
// prose, or truncated mid-array; this package recovers as much well-formed
// structure as possible before giving up.
package decode

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnparseable is returned when no JSON value could be recovered from the
// input by any strategy. Decode never fails any other way.
var ErrUnparseable = errors.New("decode: no parseable JSON value")

// fenceRE matches a single code fence spanning the entire (trimmed) input,
// with an optional language tag. Fences embedded in surrounding prose are
// deliberately not matched.
var fenceRE = regexp.MustCompile("(?s)^```[a-zA-Z0-9]*[ \t]*\n?(.*?)\n?```$")

// Decode extracts a JSON value from text. Strategies are tried in order,
// short-circuiting on the first success:
//
//  1. strip a whole-string markdown fence
//  2. strict parse
//  3. iterative array salvage (only when expectArray and the text opens
//     with an array bracket): recover every complete top-level object from
//     a truncated or partially malformed array
//  4. greedy substring extraction from the first opening bracket/brace to
//     the last closing one of the same kind
//
// A successful parse with the "wrong" top-level shape is still returned;
// shape validation is the caller's job. Values are the generic
// encoding/json forms (map[string]any, []any, string, float64, bool, nil).
func Decode(text string, expectArray bool) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrUnparseable
	}

	if m := fenceRE.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v, nil
	}

	if expectArray && strings.HasPrefix(text, "[") {
		if items := salvageArray(text[1:]); len(items) > 0 {
			return items, nil
		}
	}

	if v, ok := looseExtract(text); ok {
		return v, nil
	}

	return nil, ErrUnparseable
}

// salvageArray scans the interior of a broken top-level JSON array and
// collects every complete object it can parse. The scanner tracks whether
// it is inside a quoted string (a quote is escaped when preceded by an odd
// number of backslashes) and the brace depth outside strings. Whenever the
// depth returns to zero on a closing brace the accumulated buffer is parsed
// as a standalone object; junk that fails to parse is dropped without
// aborting the scan. A top-level comma also discards any buffered junk, so
// partial objects never bleed across element boundaries.
func salvageArray(interior string) []any {
	var items []any
	var buf strings.Builder
	inString := false
	escaped := false
	depth := 0

	for i := 0; i < len(interior); i++ {
		ch := interior[i]

		if inString {
			buf.WriteByte(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			buf.WriteByte(ch)
		case '{':
			depth++
			buf.WriteByte(ch)
		case '}':
			if depth > 0 {
				depth--
			}
			buf.WriteByte(ch)
			if depth == 0 {
				var obj map[string]any
				if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &obj); err == nil {
					items = append(items, obj)
				}
				buf.Reset()
			}
		case ',':
			if depth == 0 {
				buf.Reset()
			} else {
				buf.WriteByte(ch)
			}
		default:
			buf.WriteByte(ch)
		}
	}

	return items
}

// looseExtract is the last-resort strategy: take the first opening bracket
// or brace in the text and the last closing character of the same kind, and
// parse the substring between them. Catches JSON wrapped in commentary.
func looseExtract(text string) (any, bool) {
	arrIdx := strings.IndexByte(text, '[')
	objIdx := strings.IndexByte(text, '{')

	var start int
	var closer byte
	switch {
	case arrIdx == -1 && objIdx == -1:
		return nil, false
	case objIdx == -1 || (arrIdx != -1 && arrIdx < objIdx):
		start, closer = arrIdx, ']'
	default:
		start, closer = objIdx, '}'
	}

	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(text[start:end+1]), &v); err != nil {
		return nil, false
	}
	return v, true
}
