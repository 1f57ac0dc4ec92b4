package canonform

// ToPSO converts v to its PSO form: map[string]any or string, with every leaf
// a string and no sequences anywhere.
//
// A sequence always raises SequenceNotAllowed. Under PSOStrict every failure
// fails the call; under PSOLenient the failing key is omitted.
func (e *Engine) ToPSO(v Value, strictness PSOStrictness) (any, error) {
	if err := strictness.Validate(); err != nil {
		return nil, err
	}
	drop := func(*ConversionError) bool { return strictness == PSOLenient }
	out, err := e.toPSO(v, drop, rootPath)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) toPSO(v Value, drop dropRule, path string) (any, *ConversionError) {
	tag, cerr := e.classify(v, path)
	if cerr != nil {
		return nil, cerr
	}
	switch tag {
	case TagFunction, TagNull, TagUndefined:
		return nil, errNotConvertible(tag, path, "a PSO value")
	case TagArray:
		return nil, NewConversionError(CodeSequenceNotAllowed, tag, path, "cannot convert a sequence to a PSO value")
	case TagObject:
		out := make(map[string]any, len(v.obj))
		for _, k := range v.Keys() {
			r, err := e.toPSO(v.obj[k], drop, keyPath(path, k))
			if err != nil {
				if err = e.resolve(FormPSO, err, drop); err != nil {
					return nil, err
				}
				continue
			}
			out[k] = r
		}
		return out, nil
	default:
		s, err := encodeScalar(tag, v, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
