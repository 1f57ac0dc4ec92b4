package canonform

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Tag classifies a Value.
type Tag uint8

const (
	TagUndefined Tag = iota
	TagNull
	TagString
	TagNumber
	TagBoolean
	TagFunction
	TagArray
	TagObject
	TagDate
	TagRegex
)

var tagNames = [...]string{
	TagUndefined: "undefined",
	TagNull:      "null",
	TagString:    "string",
	TagNumber:    "number",
	TagBoolean:   "boolean",
	TagFunction:  "function",
	TagArray:     "array",
	TagObject:    "object",
	TagDate:      "date",
	TagRegex:     "regex",
}

// String returns the tag name.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// IsScalar reports whether values of this tag are handled by the scalar codec.
func (t Tag) IsScalar() bool {
	switch t {
	case TagString, TagNumber, TagBoolean, TagDate, TagRegex:
		return true
	default:
		return false
	}
}

// ParseTag returns the Tag named s.
func ParseTag(s string) (Tag, error) {
	for i, name := range tagNames {
		if name == s {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tag %q", s)
}

// Value is a runtime value the engine converts. The zero Value is undefined.
type Value struct {
	tag Tag

	// Scalar values (only one valid based on tag)
	str     string // string, regex pattern or function name
	num     float64
	boolVal bool
	timeVal time.Time

	// Container values
	seq []Value
	obj map[string]Value
}

func Undefined() Value { return Value{} }

func Null() Value { return Value{tag: TagNull} }

func Str(s string) Value { return Value{tag: TagString, str: s} }

func Number(f float64) Value { return Value{tag: TagNumber, num: f} }

func Bool(b bool) Value { return Value{tag: TagBoolean, boolVal: b} }

// Func returns an opaque function value. The name is only used for display.
func Func(name string) Value { return Value{tag: TagFunction, str: name} }

func Date(t time.Time) Value { return Value{tag: TagDate, timeVal: t} }

// Regex returns a pattern value. The pattern is not compiled.
func Regex(pattern string) Value { return Value{tag: TagRegex, str: pattern} }

// Seq returns a sequence holding vs.
func Seq(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{tag: TagArray, seq: vs}
}

// Map returns a keyed map value. A nil map yields an empty map.
func Map(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{tag: TagObject, obj: m}
}

// Object builds a map value from alternating key/value pairs.
// It panics if kv has odd length or a key is not a string.
func Object(kv ...any) Value {
	if len(kv)%2 != 0 {
		panic("canonform: Object requires key/value pairs")
	}
	m := make(map[string]Value, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("canonform: Object key %v is not a string", kv[i]))
		}
		v, ok := kv[i+1].(Value)
		if !ok {
			panic(fmt.Sprintf("canonform: Object value for %q is not a Value", k))
		}
		m[k] = v
	}
	return Value{tag: TagObject, obj: m}
}

// Tag returns the discriminant of v.
func (v Value) Tag() Tag { return v.tag }

func (v Value) AsStr() (string, error) {
	if v.tag != TagString {
		return "", v.wrongTag(TagString)
	}
	return v.str, nil
}

func (v Value) AsNumber() (float64, error) {
	if v.tag != TagNumber {
		return 0, v.wrongTag(TagNumber)
	}
	return v.num, nil
}

func (v Value) AsBool() (bool, error) {
	if v.tag != TagBoolean {
		return false, v.wrongTag(TagBoolean)
	}
	return v.boolVal, nil
}

func (v Value) AsDate() (time.Time, error) {
	if v.tag != TagDate {
		return time.Time{}, v.wrongTag(TagDate)
	}
	return v.timeVal, nil
}

func (v Value) AsRegex() (string, error) {
	if v.tag != TagRegex {
		return "", v.wrongTag(TagRegex)
	}
	return v.str, nil
}

func (v Value) AsSeq() ([]Value, error) {
	if v.tag != TagArray {
		return nil, v.wrongTag(TagArray)
	}
	return v.seq, nil
}

func (v Value) AsMap() (map[string]Value, error) {
	if v.tag != TagObject {
		return nil, v.wrongTag(TagObject)
	}
	return v.obj, nil
}

func (v Value) wrongTag(want Tag) error {
	return fmt.Errorf("expected %s, got %s", want, v.tag)
}

// Compile compiles the pattern of a regex value.
func (v Value) Compile() (*regexp.Regexp, error) {
	p, err := v.AsRegex()
	if err != nil {
		return nil, err
	}
	return regexp.Compile(p)
}

// Len returns the number of elements of a sequence or keys of a map, 0 otherwise.
func (v Value) Len() int {
	switch v.tag {
	case TagArray:
		return len(v.seq)
	case TagObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Get returns the value stored under key. Missing keys and non-map values yield undefined.
func (v Value) Get(key string) Value {
	if v.tag != TagObject {
		return Undefined()
	}
	return v.obj[key]
}

// Has reports whether key is an own key of a map value.
func (v Value) Has(key string) bool {
	if v.tag != TagObject {
		return false
	}
	_, ok := v.obj[key]
	return ok
}

// Index returns the i-th element of a sequence.
func (v Value) Index(i int) (Value, error) {
	if v.tag != TagArray {
		return Value{}, v.wrongTag(TagArray)
	}
	if i < 0 || i >= len(v.seq) {
		return Value{}, fmt.Errorf("index %d out of range [0:%d]", i, len(v.seq))
	}
	return v.seq[i], nil
}

// Keys returns the own keys of a map value in sorted order.
func (v Value) Keys() []string {
	if v.tag != TagObject {
		return nil
	}
	return slices.Sorted(maps.Keys(v.obj))
}

// Equal reports deep equality. Dates compare as instants.
func (v Value) Equal(o Value) bool {
	if v.tag != o.tag {
		return false
	}
	switch v.tag {
	case TagUndefined, TagNull:
		return true
	case TagString, TagRegex, TagFunction:
		return v.str == o.str
	case TagNumber:
		return v.num == o.num
	case TagBoolean:
		return v.boolVal == o.boolVal
	case TagDate:
		return v.timeVal.Equal(o.timeVal)
	case TagArray:
		return slices.EqualFunc(v.seq, o.seq, Value.Equal)
	case TagObject:
		return maps.EqualFunc(v.obj, o.obj, Value.Equal)
	}
	return false
}

// String renders v in a JavaScript-like literal notation for debugging.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.tag {
	case TagUndefined:
		sb.WriteString("undefined")
	case TagNull:
		sb.WriteString("null")
	case TagString:
		sb.WriteString(strconv.Quote(v.str))
	case TagNumber:
		sb.WriteString(formatNumber(v.num))
	case TagBoolean:
		sb.WriteString(strconv.FormatBool(v.boolVal))
	case TagFunction:
		sb.WriteString("function " + v.str + "()")
	case TagDate:
		sb.WriteString("Date(" + formatDate(v.timeVal) + ")")
	case TagRegex:
		sb.WriteString("/" + v.str + "/")
	case TagArray:
		sb.WriteByte('[')
		for i, el := range v.seq {
			if i > 0 {
				sb.WriteString(", ")
			}
			el.write(sb)
		}
		sb.WriteByte(']')
	case TagObject:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			v.obj[k].write(sb)
		}
		sb.WriteByte('}')
	}
}
