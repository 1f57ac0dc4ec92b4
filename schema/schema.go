// Package schema rebuilds values from their canonical forms using a declared
// field tree. It is the schema collaborator of the canonform parse functions.
package schema

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/grahms/canonform"
)

// Field declares the tag a value resolves to. Arrays carry an element field,
// objects carry their declared fields.
type Field struct {
	Tag        canonform.Tag
	Elem       *Field            // TagArray only
	Fields     map[string]*Field // TagObject only
	Validators []Validator       // scalar tags only
}

var _ canonform.Schema = (*Field)(nil)

// Leaf declares a scalar, null or undefined field.
func Leaf(tag canonform.Tag, validators ...Validator) *Field {
	return &Field{Tag: tag, Validators: validators}
}

// List declares a sequence whose elements all resolve through elem.
func List(elem *Field) *Field {
	return &Field{Tag: canonform.TagArray, Elem: elem}
}

// Object declares a map with the given fields.
func Object(fields map[string]*Field) *Field {
	if fields == nil {
		fields = map[string]*Field{}
	}
	return &Field{Tag: canonform.TagObject, Fields: fields}
}

// FromJSON rebuilds a value from its JSON form. Number and boolean leaves may
// be native or text.
func (f *Field) FromJSON(v any) (canonform.Value, error) {
	return f.decode(canonform.FormJSON, v, "$")
}

// FromQSO rebuilds a value from its QSO form.
func (f *Field) FromQSO(v any) (canonform.Value, error) {
	return f.decode(canonform.FormQSO, v, "$")
}

// FromPSO rebuilds a value from its PSO form.
func (f *Field) FromPSO(v any) (canonform.Value, error) {
	return f.decode(canonform.FormPSO, v, "$")
}

func (f *Field) decode(form canonform.Form, v any, path string) (canonform.Value, error) {
	if f == nil {
		return passthrough(v, path)
	}
	switch f.Tag {
	case canonform.TagArray:
		return f.decodeList(form, v, path)
	case canonform.TagObject:
		return f.decodeObject(form, v, path)
	case canonform.TagUndefined, canonform.TagNull:
		return canonform.Parse(f.Tag, "")
	case canonform.TagFunction:
		return canonform.Value{}, canonform.NewConversionError(canonform.CodeUnsupportedType, f.Tag, path,
			"functions cannot be rebuilt")
	default:
		return f.decodeLeaf(form, v, path)
	}
}

func (f *Field) decodeList(form canonform.Form, v any, path string) (canonform.Value, error) {
	if form == canonform.FormPSO {
		return canonform.Value{}, canonform.NewConversionError(canonform.CodeSequenceNotAllowed, f.Tag, path,
			"PSO form has no sequences")
	}
	if form == canonform.FormQSO && f.Elem != nil && !f.Elem.Tag.IsScalar() {
		return canonform.Value{}, canonform.NewConversionError(canonform.CodeEmbeddedStructureNotAllowed, f.Elem.Tag, path,
			"QSO sequences only hold scalars")
	}
	items, ok := v.([]any)
	if !ok {
		return canonform.Value{}, mismatch(f.Tag, v, path)
	}
	out := make([]canonform.Value, len(items))
	for i, item := range items {
		el, err := f.Elem.decode(form, item, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return canonform.Value{}, err
		}
		out[i] = el
	}
	return canonform.Seq(out...), nil
}

func (f *Field) decodeObject(form canonform.Form, v any, path string) (canonform.Value, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return canonform.Value{}, mismatch(f.Tag, v, path)
	}
	out := make(map[string]canonform.Value, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		child := path + "." + k
		var (
			el  canonform.Value
			err error
		)
		if field, declared := f.Fields[k]; declared {
			el, err = field.decode(form, m[k], child)
		} else {
			el, err = passthrough(m[k], child)
		}
		if err != nil {
			return canonform.Value{}, err
		}
		out[k] = el
	}
	return canonform.Map(out), nil
}

func (f *Field) decodeLeaf(form canonform.Form, v any, path string) (canonform.Value, error) {
	switch x := v.(type) {
	case string:
		if err := validate(f.Validators, path, x); err != nil {
			return canonform.Value{}, err
		}
		out, err := canonform.Parse(f.Tag, x)
		if err != nil {
			return canonform.Value{}, atPath(err, path)
		}
		return out, nil
	case float64, json.Number, bool:
		if form != canonform.FormJSON {
			return canonform.Value{}, mismatch(f.Tag, v, path)
		}
		out, err := canonform.FromNative(x)
		if err != nil {
			return canonform.Value{}, atPath(err, path)
		}
		if out.Tag() != f.Tag {
			return canonform.Value{}, mismatch(f.Tag, v, path)
		}
		text, err := canonform.Encode(f.Tag, out)
		if err != nil {
			return canonform.Value{}, atPath(err, path)
		}
		if err := validate(f.Validators, path, text); err != nil {
			return canonform.Value{}, err
		}
		return out, nil
	default:
		return canonform.Value{}, mismatch(f.Tag, v, path)
	}
}

// passthrough imports undeclared content as is.
func passthrough(v any, path string) (canonform.Value, error) {
	out, err := canonform.FromNative(v)
	if err != nil {
		return canonform.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func mismatch(tag canonform.Tag, v any, path string) error {
	pe := canonform.NewParseError(tag, fmt.Sprint(v), fmt.Sprintf("unexpected %T", v), nil)
	pe.Path = path
	return pe
}

func atPath(err error, path string) error {
	if cerr, ok := canonform.AsConversionError(err); ok {
		cerr.Path = path
	}
	return err
}
