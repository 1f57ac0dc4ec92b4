package canonform

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	for tag := TagUndefined; tag <= TagRegex; tag++ {
		parsed, err := ParseTag(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, parsed)
	}
	_, err := ParseTag("symbol")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Tag(200).String())
	assert.True(t, TagDate.IsScalar())
	assert.False(t, TagNull.IsScalar())
}

func TestValue(t *testing.T) {
	t.Run("zero value is undefined", func(t *testing.T) {
		var v Value
		assert.Equal(t, TagUndefined, v.Tag())
		assert.True(t, v.Equal(Undefined()))
	})

	t.Run("accessors reject other tags", func(t *testing.T) {
		_, err := Str("x").AsNumber()
		assert.Error(t, err)
		_, err = Number(1).AsStr()
		assert.Error(t, err)
		_, err = Null().AsSeq()
		assert.Error(t, err)
	})

	t.Run("map helpers", func(t *testing.T) {
		v := Object("b", Number(2), "a", Str("x"))
		assert.Equal(t, []string{"a", "b"}, v.Keys())
		assert.Equal(t, 2, v.Len())
		assert.True(t, v.Has("a"))
		assert.False(t, v.Has("c"))
		assert.Equal(t, TagUndefined, v.Get("c").Tag())
		assert.Equal(t, Number(2), v.Get("b"))
	})

	t.Run("sequence helpers", func(t *testing.T) {
		v := Seq(Str("x"), Bool(true))
		el, err := v.Index(1)
		require.NoError(t, err)
		assert.Equal(t, Bool(true), el)
		_, err = v.Index(2)
		assert.Error(t, err)
		assert.Equal(t, 0, Seq().Len())
	})

	t.Run("object panics on malformed pairs", func(t *testing.T) {
		assert.Panics(t, func() { Object("a") })
		assert.Panics(t, func() { Object(1, Null()) })
		assert.Panics(t, func() { Object("a", "not a value") })
	})

	t.Run("equality compares dates as instants", func(t *testing.T) {
		at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		assert.True(t, Date(at).Equal(Date(at.In(time.FixedZone("X", 3600)))))
		assert.False(t, Seq(Number(1)).Equal(Seq(Number(2))))
		assert.True(t, Object("a", Seq(Null())).Equal(Object("a", Seq(Null()))))
	})

	t.Run("string renders a literal", func(t *testing.T) {
		v := Object(
			"s", Str("hi"),
			"n", Number(1.5),
			"l", Seq(Bool(true), Null(), Undefined()),
			"r", Regex("a+"),
			"f", Func("handler"),
			"d", Date(time.UnixMilli(0)),
		)
		assert.Equal(t,
			`{d: Date(1970-01-01T00:00:00.000Z), f: function handler(), l: [true, null, undefined], n: 1.5, r: /a+/, s: "hi"}`,
			v.String())
	})
}

func TestFromNative(t *testing.T) {
	t.Run("should import decoded JSON", func(t *testing.T) {
		var doc any
		require.NoError(t, json.Unmarshal([]byte(`{"a":[1,"x",true,null],"b":{"c":2.5}}`), &doc))
		v, err := FromNative(doc)
		require.NoError(t, err)
		want := Object(
			"a", Seq(Number(1), Str("x"), Bool(true), Null()),
			"b", Object("c", Number(2.5)),
		)
		assert.True(t, want.Equal(v), "got %s", v)
	})

	t.Run("should import Go specific types", func(t *testing.T) {
		at := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
		var nilPtr *int
		v, err := FromNative(map[string]any{
			"time":   at,
			"re":     regexp.MustCompile(`^x$`),
			"fn":     func() {},
			"ints":   []int{1, 2},
			"arr":    [2]string{"a", "b"},
			"u":      uint8(9),
			"num":    json.Number("12.5"),
			"nil":    nilPtr,
			"nested": map[string]string{"k": "v"},
			"value":  Undefined(),
		})
		require.NoError(t, err)
		assert.Equal(t, Date(at), v.Get("time"))
		assert.Equal(t, Regex("^x$"), v.Get("re"))
		assert.Equal(t, TagFunction, v.Get("fn").Tag())
		assert.True(t, Seq(Number(1), Number(2)).Equal(v.Get("ints")))
		assert.True(t, Seq(Str("a"), Str("b")).Equal(v.Get("arr")))
		assert.Equal(t, Number(9), v.Get("u"))
		assert.Equal(t, Number(12.5), v.Get("num"))
		assert.Equal(t, Null(), v.Get("nil"))
		assert.True(t, Object("k", Str("v")).Equal(v.Get("nested")))
		assert.True(t, v.Has("value"))
		assert.Equal(t, TagUndefined, v.Get("value").Tag())
	})

	t.Run("should reject unsupported types with a path", func(t *testing.T) {
		_, err := FromNative(map[string]any{"a": []any{struct{}{}}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedType)
		cerr, ok := AsConversionError(err)
		require.True(t, ok)
		assert.Equal(t, "$.a[0]", cerr.Path)

		_, err = FromNative(map[int]string{1: "x"})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}
