package canonform

// Parse decodes text as a value of the given tag. It is the per-leaf entry
// point schemas use to rebuild values from a canonical form.
func Parse(tag Tag, text string) (Value, error) {
	return Decode(tag, text)
}

// Schema rebuilds values from canonical forms. It knows which tag every
// field resolves to; the engine never infers tags from string content.
type Schema interface {
	FromJSON(v any) (Value, error)
	FromQSO(v any) (Value, error)
	FromPSO(v any) (Value, error)
}

// ParseFromJSON rebuilds a value from its JSON form.
func ParseFromJSON(schema Schema, v any) (Value, error) {
	if schema == nil {
		return Value{}, errMissingSchema(FormJSON)
	}
	return schema.FromJSON(v)
}

// ParseFromQSO rebuilds a value from its QSO form.
func ParseFromQSO(schema Schema, v any) (Value, error) {
	if schema == nil {
		return Value{}, errMissingSchema(FormQSO)
	}
	return schema.FromQSO(v)
}

// ParseFromPSO rebuilds a value from its PSO form.
func ParseFromPSO(schema Schema, v any) (Value, error) {
	if schema == nil {
		return Value{}, errMissingSchema(FormPSO)
	}
	return schema.FromPSO(v)
}

// ParseFrom dispatches to the entry point of the given form.
func ParseFrom(form Form, schema Schema, v any) (Value, error) {
	switch form {
	case FormJSON:
		return ParseFromJSON(schema, v)
	case FormQSO:
		return ParseFromQSO(schema, v)
	case FormPSO:
		return ParseFromPSO(schema, v)
	default:
		return Value{}, NewConversionError(CodeUnsupportedType, TagUndefined, "", "unknown form "+form.String())
	}
}

func errMissingSchema(form Form) *ConversionError {
	return NewConversionError(CodeMissingSchema, TagUndefined, "", "cannot parse "+form.String()+" form without a schema")
}
