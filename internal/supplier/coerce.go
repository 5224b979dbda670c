package supplier

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"faresearch/internal/flight"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

var nonDigits = regexp.MustCompile(`\D`)

// timestampLayouts are tried in order; the first that parses wins.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseString(r gjson.Result) (string, bool) {
	var s string
	switch r.Type {
	case gjson.String:
		s = r.Str
	case gjson.Number:
		s = cast.ToString(r.Value())
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func parseUpper(r gjson.Result) (string, bool) {
	s, ok := parseString(r)
	return strings.ToUpper(s), ok
}

// parseInt accepts JSON numbers (truncated) and strings with digits
// embedded anywhere ("INR 5,400" -> 5400). Values outside int64 are absent.
func parseInt(r gjson.Result) (int64, bool) {
	switch r.Type {
	case gjson.Number:
		if r.Num >= math.MaxInt64 || r.Num < math.MinInt64 {
			return 0, false
		}
		return cast.ToInt64(r.Num), true
	case gjson.String:
		return digitsToInt(r.Str)
	}
	return 0, false
}

func parseCount(r gjson.Result) (int, bool) {
	n, ok := parseInt(r)
	return int(n), ok
}

// parseDuration reads minutes from a number, a Go or ISO-8601 style
// duration ("2h 30m", "PT2H30M"), or falls back to the digit strip.
func parseDuration(r gjson.Result) (int, bool) {
	if r.Type == gjson.String {
		compact := strings.ToLower(strings.ReplaceAll(r.Str, " ", ""))
		compact = strings.TrimPrefix(compact, "pt")
		if d, err := time.ParseDuration(compact); err == nil && strings.ContainsAny(compact, "hm") {
			return int(d.Minutes()), true
		}
	}
	return parseCount(r)
}

func parseBool(r gjson.Result) (bool, bool) {
	switch r.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.Number:
		return r.Num != 0, true
	case gjson.String:
		b, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(r.Str)))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// parseRefund passes policy text through and maps the boolean and numeric
// encodings some suppliers use.
func parseRefund(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.True:
		return "Refundable", true
	case gjson.False:
		return "Non-Refundable", true
	case gjson.Number:
		switch int(r.Num) {
		case 0:
			return "Non-Refundable", true
		case 1:
			return "Refundable", true
		case 2:
			return "Partially Refundable", true
		}
		return "", false
	}
	return parseString(r)
}

// parseTimestamp truncates to minute precision and keeps the supplier's wall
// clock. Anything unparseable is reported as absent.
func parseTimestamp(r gjson.Result) (string, bool) {
	s, ok := parseString(r)
	if !ok {
		return "", false
	}
	ts := NormalizeTimestamp(s)
	return ts, ts != ""
}

// NormalizeTimestamp formats s as flight.TimestampLayout, or "" when no
// known layout matches.
func NormalizeTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(flight.TimestampLayout)
		}
	}
	return ""
}

func digitsToInt(s string) (int64, bool) {
	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	// base 10 explicitly: a leading zero must not switch to octal
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
