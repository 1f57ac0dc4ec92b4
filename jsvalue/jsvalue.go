// Package jsvalue moves values between a goja JavaScript runtime and
// canonform, classifying them the way JavaScript's typeof and class checks do.
package jsvalue

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/dop251/goja"

	"github.com/grahms/canonform"
)

// Classify returns the tag of a JavaScript value. Symbols and BigInts have no
// tag and yield an UnsupportedType error.
func Classify(v goja.Value) (canonform.Tag, error) {
	switch {
	case v == nil || goja.IsUndefined(v):
		return canonform.TagUndefined, nil
	case goja.IsNull(v):
		return canonform.TagNull, nil
	}
	if _, ok := v.(*goja.Symbol); ok {
		return 0, canonform.NewConversionError(canonform.CodeUnsupportedType, canonform.TagUndefined, "",
			"unsupported JavaScript type symbol")
	}
	if _, ok := goja.AssertFunction(v); ok {
		return canonform.TagFunction, nil
	}
	if obj, ok := v.(*goja.Object); ok {
		switch obj.ClassName() {
		case "Array":
			return canonform.TagArray, nil
		case "Date":
			return canonform.TagDate, nil
		case "RegExp":
			return canonform.TagRegex, nil
		default:
			// includes boxed primitives such as new String("x")
			return canonform.TagObject, nil
		}
	}
	return classifyPrimitive(v.ExportType())
}

func classifyPrimitive(t reflect.Type) (canonform.Tag, error) {
	if t != nil {
		switch t.Kind() {
		case reflect.String:
			return canonform.TagString, nil
		case reflect.Int64, reflect.Float64:
			return canonform.TagNumber, nil
		case reflect.Bool:
			return canonform.TagBoolean, nil
		}
	}
	return 0, canonform.NewConversionError(canonform.CodeUnsupportedType, canonform.TagUndefined, "",
		fmt.Sprintf("unsupported JavaScript type %v", t))
}

// Import converts a JavaScript value into a canonform value. Only own
// enumerable string keys of objects are read. Array holes become undefined and
// invalid dates become null. Cyclic structures are rejected.
func Import(v goja.Value) (canonform.Value, error) {
	im := importer{seen: map[*goja.Object]bool{}}
	return im.value(v, "$")
}

type importer struct {
	seen map[*goja.Object]bool
}

func (im importer) value(v goja.Value, path string) (canonform.Value, error) {
	tag, err := Classify(v)
	if err != nil {
		if cerr, ok := canonform.AsConversionError(err); ok {
			cerr.Path = path
		}
		return canonform.Value{}, err
	}
	switch tag {
	case canonform.TagUndefined:
		return canonform.Undefined(), nil
	case canonform.TagNull:
		return canonform.Null(), nil
	case canonform.TagFunction:
		name := ""
		if n := v.(*goja.Object).Get("name"); n != nil {
			name = n.String()
		}
		return canonform.Func(name), nil
	case canonform.TagString:
		return canonform.Str(v.String()), nil
	case canonform.TagNumber:
		return canonform.Number(v.ToFloat()), nil
	case canonform.TagBoolean:
		return canonform.Bool(v.ToBoolean()), nil
	}

	obj := v.(*goja.Object)
	switch tag {
	case canonform.TagDate:
		if t, ok := obj.Export().(time.Time); ok {
			return canonform.Date(t), nil
		}
		return canonform.Null(), nil
	case canonform.TagRegex:
		return canonform.Regex(obj.Get("source").String()), nil
	}

	if im.seen[obj] {
		return canonform.Value{}, canonform.NewConversionError(canonform.CodeUnsupportedType, tag, path,
			"cyclic structure")
	}
	im.seen[obj] = true
	defer delete(im.seen, obj)

	if tag == canonform.TagArray {
		n := int(obj.Get("length").ToInteger())
		items := make([]canonform.Value, n)
		for i := range n {
			el, err := im.value(obj.Get(strconv.Itoa(i)), path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return canonform.Value{}, err
			}
			items[i] = el
		}
		return canonform.Seq(items...), nil
	}

	keys := obj.Keys()
	m := make(map[string]canonform.Value, len(keys))
	for _, k := range keys {
		el, err := im.value(obj.Get(k), path+"."+k)
		if err != nil {
			return canonform.Value{}, err
		}
		m[k] = el
	}
	return canonform.Map(m), nil
}

// Export builds the JavaScript counterpart of v inside vm. Functions cannot
// be rebuilt and yield an UnsupportedType error.
func Export(vm *goja.Runtime, v canonform.Value) (goja.Value, error) {
	switch v.Tag() {
	case canonform.TagUndefined:
		return goja.Undefined(), nil
	case canonform.TagNull:
		return goja.Null(), nil
	case canonform.TagString:
		s, _ := v.AsStr()
		return vm.ToValue(s), nil
	case canonform.TagNumber:
		f, _ := v.AsNumber()
		return vm.ToValue(f), nil
	case canonform.TagBoolean:
		b, _ := v.AsBool()
		return vm.ToValue(b), nil
	case canonform.TagDate:
		t, _ := v.AsDate()
		return vm.New(vm.Get("Date"), vm.ToValue(t.UnixMilli()))
	case canonform.TagRegex:
		src, _ := v.AsRegex()
		return vm.New(vm.Get("RegExp"), vm.ToValue(src))
	case canonform.TagArray:
		seq, _ := v.AsSeq()
		items := make([]any, len(seq))
		for i, el := range seq {
			x, err := Export(vm, el)
			if err != nil {
				return nil, err
			}
			items[i] = x
		}
		return vm.NewArray(items...), nil
	case canonform.TagObject:
		obj := vm.NewObject()
		for _, k := range v.Keys() {
			x, err := Export(vm, v.Get(k))
			if err != nil {
				return nil, err
			}
			if err := obj.Set(k, x); err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return nil, canonform.NewConversionError(canonform.CodeUnsupportedType, v.Tag(), "",
			"cannot export "+v.Tag().String()+" to JavaScript")
	}
}

// Eval evaluates a JavaScript expression in vm and imports the result. The
// source is parenthesized so object literals are not read as blocks.
func Eval(vm *goja.Runtime, src string) (canonform.Value, error) {
	res, err := vm.RunString("(" + src + "\n)")
	if err != nil {
		return canonform.Value{}, fmt.Errorf("could not evaluate expression: %w", err)
	}
	return Import(res)
}
