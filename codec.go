package canonform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateFormat is the text produced for dates, matching Date#toJSON.
const dateFormat = "2006-01-02T15:04:05.000Z"

// numberRe is the only number syntax Decode accepts.
var numberRe = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)

var epochMillisRe = regexp.MustCompile(`^[-+]?\d+$`)

// dateLayouts are tried in order. Zone-less layouts are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.RFC822,
	time.RFC822Z,
	time.ANSIC,
	time.UnixDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Mon Jan 02 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Encode returns the canonical text of a scalar value. The tag must be one of
// string, number, boolean, date or regex and must match the value.
func Encode(tag Tag, v Value) (string, error) {
	s, err := encodeScalar(tag, v, "")
	if err != nil {
		return "", err
	}
	return s, nil
}

func encodeScalar(tag Tag, v Value, path string) (string, *ConversionError) {
	if tag.IsScalar() && v.tag != tag {
		return "", NewConversionError(CodeUnsupportedType, tag, path,
			fmt.Sprintf("cannot encode %s value as %s", v.tag, tag))
	}
	switch tag {
	case TagString:
		return v.str, nil
	case TagNumber:
		return formatNumber(v.num), nil
	case TagBoolean:
		return strconv.FormatBool(v.boolVal), nil
	case TagDate:
		return formatDate(v.timeVal), nil
	case TagRegex:
		return v.str, nil
	default:
		return "", errUnsupported(tag, path)
	}
}

// formatNumber renders f the way Number#toString does.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateFormat)
}

// Decode builds a value of the given tag from its canonical text. Undefined
// and null ignore the text.
func Decode(tag Tag, text string) (Value, error) {
	switch tag {
	case TagString:
		return Str(text), nil
	case TagNumber:
		f, err := parseNumber(text)
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case TagBoolean:
		b, err := parseBoolean(text)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case TagDate:
		t, err := parseDate(text)
		if err != nil {
			return Value{}, err
		}
		return Date(t), nil
	case TagRegex:
		return Regex(text), nil
	case TagUndefined:
		return Undefined(), nil
	case TagNull:
		return Null(), nil
	default:
		return Value{}, errUnsupported(tag, "")
	}
}

func parseNumber(text string) (float64, *ParseError) {
	if !numberRe.MatchString(text) {
		return 0, NewParseError(TagNumber, text, "not a base 10 number", nil)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, NewParseError(TagNumber, text, "", err)
	}
	return f, nil
}

func parseBoolean(text string) (bool, *ParseError) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, NewParseError(TagBoolean, text, `expected "true" or "false"`, nil)
	}
}

func parseDate(text string) (time.Time, *ParseError) {
	s := strings.TrimSpace(text)
	// Date#toString appends the zone name in parentheses.
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if epochMillisRe.MatchString(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, NewParseError(TagDate, text, "epoch milliseconds out of range", err)
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, NewParseError(TagDate, text, "invalid date", nil)
}
