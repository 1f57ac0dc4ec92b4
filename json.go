package canonform

// ToJSON converts v to its JSON form: map[string]any, []any, string, float64
// or bool. Dates and regexes become strings.
//
// Undefined children are always omitted. Function and null children are
// omitted under JSONLenient and fail the call under JSONStrict.
func (e *Engine) ToJSON(v Value, strictness JSONStrictness) (any, error) {
	if err := strictness.Validate(); err != nil {
		return nil, err
	}
	drop := func(err *ConversionError) bool {
		return err.Class() == ClassAbsence || strictness == JSONLenient
	}
	out, err := e.toJSON(v, drop, rootPath)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) toJSON(v Value, drop dropRule, path string) (any, *ConversionError) {
	tag, cerr := e.classify(v, path)
	if cerr != nil {
		return nil, cerr
	}
	switch tag {
	case TagFunction, TagNull, TagUndefined:
		return nil, errNotConvertible(tag, path, "a JSON value")
	case TagArray:
		out := make([]any, 0, len(v.seq))
		for i, el := range v.seq {
			r, err := e.toJSON(el, drop, indexPath(path, i))
			if err != nil {
				if err = e.resolve(FormJSON, err, drop); err != nil {
					return nil, err
				}
				continue
			}
			out = append(out, r)
		}
		return out, nil
	case TagObject:
		out := make(map[string]any, len(v.obj))
		for _, k := range v.Keys() {
			r, err := e.toJSON(v.obj[k], drop, keyPath(path, k))
			if err != nil {
				if err = e.resolve(FormJSON, err, drop); err != nil {
					return nil, err
				}
				continue
			}
			out[k] = r
		}
		return out, nil
	case TagString:
		return v.str, nil
	case TagNumber:
		return v.num, nil
	case TagBoolean:
		return v.boolVal, nil
	case TagDate, TagRegex:
		s, err := encodeScalar(tag, v, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errUnsupported(tag, path)
	}
}
