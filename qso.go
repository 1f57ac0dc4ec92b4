package canonform

// ToQSO converts v to its QSO form: map[string]any, []any or string, with
// every leaf a string. A sequence may only hold scalars; maps nest freely.
//
// How failing children are treated depends on strictness:
//
//	QSONormalize       every failure omits the child
//	QSORejectEmbedded  structures embedded in a sequence fail the call, others are omitted
//	QSOStrict          only undefined children are omitted
func (e *Engine) ToQSO(v Value, strictness QSOStrictness) (any, error) {
	if err := strictness.Validate(); err != nil {
		return nil, err
	}
	var drop dropRule
	switch strictness {
	case QSONormalize:
		drop = func(*ConversionError) bool { return true }
	case QSORejectEmbedded:
		drop = func(err *ConversionError) bool { return err.Class() != ClassEmbedded }
	case QSOStrict:
		drop = func(err *ConversionError) bool { return err.Class() == ClassAbsence }
	}
	out, err := e.toQSO(v, drop, false, rootPath)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// toQSO converts v. insideSeq is true below any sequence and stays true for
// every descendant.
func (e *Engine) toQSO(v Value, drop dropRule, insideSeq bool, path string) (any, *ConversionError) {
	tag, cerr := e.classify(v, path)
	if cerr != nil {
		return nil, cerr
	}
	switch tag {
	case TagFunction, TagNull, TagUndefined:
		return nil, errNotConvertible(tag, path, "a QSO value")
	case TagArray:
		if insideSeq {
			return nil, errEmbedded(tag, path)
		}
		out := make([]any, 0, len(v.seq))
		for i, el := range v.seq {
			r, err := e.toQSO(el, drop, true, indexPath(path, i))
			if err != nil {
				if err = e.resolve(FormQSO, err, drop); err != nil {
					return nil, err
				}
				continue
			}
			out = append(out, r)
		}
		return out, nil
	case TagObject:
		if insideSeq {
			return nil, errEmbedded(tag, path)
		}
		out := make(map[string]any, len(v.obj))
		for _, k := range v.Keys() {
			r, err := e.toQSO(v.obj[k], drop, insideSeq, keyPath(path, k))
			if err != nil {
				if err = e.resolve(FormQSO, err, drop); err != nil {
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

func errEmbedded(tag Tag, path string) *ConversionError {
	return NewConversionError(CodeEmbeddedStructureNotAllowed, tag, path,
		"cannot embed "+tag.String()+" in a QSO sequence")
}
