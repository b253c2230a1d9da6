// Package sanitize normalises user supplied keys and values before they are
// stored.
package sanitize

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	keyDisallowed  = regexp.MustCompile(`[^a-z0-9_\-]`)
	scriptOrStyle  = regexp.MustCompile(`(?is)<(script|style)[^>]*?>.*?</(script|style)>`)
	tag            = regexp.MustCompile(`<[^>]*>?`)
	whitespaceRun  = regexp.MustCompile(`[\r\n\t ]+`)
	percentEncoded = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	repeatedSpaces = regexp.MustCompile(` +`)
)

// Key lowercases s and drops everything except a-z, 0-9, dash and underscore.
func Key(s string) string {
	return keyDisallowed.ReplaceAllString(strings.ToLower(s), "")
}

// TextField returns s as a single line of plain text. Invalid UTF-8 yields "".
func TextField(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}

	if strings.Contains(s, "<") {
		s = scriptOrStyle.ReplaceAllString(s, "")
		s = tag.ReplaceAllString(s, "")
	}

	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))

	if percentEncoded.MatchString(s) {
		for percentEncoded.MatchString(s) {
			s = percentEncoded.ReplaceAllString(s, "")
		}
		s = strings.TrimSpace(repeatedSpaces.ReplaceAllString(s, " "))
	}

	return s
}

// AbsInt accepts numeric values whose integer part is not negative.
// Integers are taken exactly, other numbers are truncated.
func AbsInt(v interface{}) (int64, bool) {
	if n, ok, exact := integer(v); exact {
		if !ok || n < 0 {
			return 0, false
		}
		return n, true
	}

	f, ok := number(v)
	if !ok || f >= maxInt64Float {
		return 0, false
	}
	n := int64(f)
	if n < 0 {
		return 0, false
	}
	return n, true
}

// Float converts numeric values and numeric strings to float64. Infinite
// and NaN results are rejected.
func Float(v interface{}) (float64, bool) {
	return number(v)
}

// String converts scalars to their string form before sanitizing.
func String(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return TextField(t)
	case []byte:
		return TextField(string(t))
	case bool:
		if t {
			return "1"
		}
		return ""
	case uint64:
		return strconv.FormatUint(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	}

	if n, ok, exact := integer(v); exact && ok {
		return strconv.FormatInt(n, 10)
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

const maxInt64Float = float64(math.MaxInt64)

// integer converts integer kinds and integer strings without going through
// float64. exact is false when v is not written as an integer, ok is false
// when it does not fit an int64.
func integer(v interface{}) (n int64, ok bool, exact bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true, true
	case int8:
		return int64(t), true, true
	case int16:
		return int64(t), true, true
	case int32:
		return int64(t), true, true
	case int64:
		return t, true, true
	case uint:
		return int64(t), uint64(t) <= math.MaxInt64, true
	case uint8:
		return int64(t), true, true
	case uint16:
		return int64(t), true, true
	case uint32:
		return int64(t), true, true
	case uint64:
		return int64(t), t <= math.MaxInt64, true
	case json.Number:
		return parseInt(string(t))
	case string:
		return parseInt(strings.TrimSpace(t))
	default:
		return 0, false, false
	}
}

func parseInt(s string) (int64, bool, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, true, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, false, true
	}
	return 0, false, false
}

func number(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case float32:
		f = float64(t)
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
