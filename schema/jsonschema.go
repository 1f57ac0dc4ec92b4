package schema

import (
	"maps"
	"slices"

	"github.com/invopop/jsonschema"

	"github.com/grahms/canonform"
)

// JSONSchema describes the documents the given form produces for values that
// match f. Null, undefined and function leaves never reach a canonical form
// and are left out of their parent object.
func JSONSchema(form canonform.Form, f *Field) (*jsonschema.Schema, error) {
	s, err := describe(form, f, "$")
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, canonform.NewConversionError(canonform.CodeUnsupportedType, f.Tag, "$",
			"no "+form.String()+" document can hold "+f.Tag.String())
	}
	s.Version = jsonschema.Version
	return s, nil
}

func describe(form canonform.Form, f *Field, path string) (*jsonschema.Schema, error) {
	if f == nil {
		return jsonschema.TrueSchema, nil
	}
	switch f.Tag {
	case canonform.TagUndefined, canonform.TagNull, canonform.TagFunction:
		return nil, nil
	case canonform.TagArray:
		if form == canonform.FormPSO {
			return nil, canonform.NewConversionError(canonform.CodeSequenceNotAllowed, f.Tag, path,
				"PSO form has no sequences")
		}
		if form == canonform.FormQSO && f.Elem != nil && !f.Elem.Tag.IsScalar() {
			return nil, canonform.NewConversionError(canonform.CodeEmbeddedStructureNotAllowed, f.Elem.Tag, path,
				"QSO sequences only hold scalars")
		}
		items, err := describe(form, f.Elem, path+"[]")
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = jsonschema.FalseSchema
		}
		return &jsonschema.Schema{Type: "array", Items: items}, nil
	case canonform.TagObject:
		props := jsonschema.NewProperties()
		for _, k := range slices.Sorted(maps.Keys(f.Fields)) {
			child, err := describe(form, f.Fields[k], path+"."+k)
			if err != nil {
				return nil, err
			}
			if child != nil {
				props.Set(k, child)
			}
		}
		return &jsonschema.Schema{Type: "object", Properties: props}, nil
	default:
		return describeLeaf(form, f), nil
	}
}

func describeLeaf(form canonform.Form, f *Field) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string"}
	switch f.Tag {
	case canonform.TagNumber:
		if form == canonform.FormJSON {
			s.Type = "number"
		}
	case canonform.TagBoolean:
		if form == canonform.FormJSON {
			s.Type = "boolean"
		} else {
			s.Enum = []any{"true", "false"}
		}
	case canonform.TagDate:
		s.Format = "date-time"
	case canonform.TagRegex:
		s.Format = "regex"
	}
	for _, v := range f.Validators {
		if rv, ok := v.(*RegexValidator); ok && s.Type == "string" {
			s.Pattern = rv.Pattern.String()
			s.Description = rv.Description
			break
		}
	}
	return s
}
