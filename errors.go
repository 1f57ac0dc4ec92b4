package canonform

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a conversion or parse failed.
type ErrorCode int

const (
	CodeFunctionNotConvertible ErrorCode = iota + 1
	CodeNullNotConvertible
	CodeUndefinedNotConvertible
	CodeEmbeddedStructureNotAllowed
	CodeSequenceNotAllowed
	CodeUnsupportedType
	CodeParseError
	CodeInvalidStrictness
	CodeMissingSchema
)

// ErrorClass groups codes by how an enclosing sequence or map may treat them.
type ErrorClass int

const (
	// ClassAbsence is a failure caused by an undefined value.
	ClassAbsence ErrorClass = iota + 1
	// ClassEmbedded is a sequence or map found inside a QSO sequence.
	ClassEmbedded
	// ClassDisallowed covers functions, nulls and PSO sequences.
	ClassDisallowed
	// ClassCodec failures come from the scalar codec and always propagate.
	ClassCodec
	// ClassUsage failures are raised at the call boundary and always propagate.
	ClassUsage
)

// Sentinel errors matched by errors.Is against any *ConversionError of the same code.
var (
	ErrFunctionNotConvertible      = errors.New("function is not convertible")
	ErrNullNotConvertible          = errors.New("null is not convertible")
	ErrUndefinedNotConvertible     = errors.New("undefined is not convertible")
	ErrEmbeddedStructureNotAllowed = errors.New("sequence or map not allowed inside a sequence")
	ErrSequenceNotAllowed          = errors.New("sequence not allowed")
	ErrUnsupportedType             = errors.New("unsupported type")
	ErrParse                       = errors.New("parse error")
	ErrInvalidStrictness           = errors.New("invalid strictness")
	ErrMissingSchema               = errors.New("missing schema")
)

var codeSentinels = map[ErrorCode]error{
	CodeFunctionNotConvertible:      ErrFunctionNotConvertible,
	CodeNullNotConvertible:          ErrNullNotConvertible,
	CodeUndefinedNotConvertible:     ErrUndefinedNotConvertible,
	CodeEmbeddedStructureNotAllowed: ErrEmbeddedStructureNotAllowed,
	CodeSequenceNotAllowed:          ErrSequenceNotAllowed,
	CodeUnsupportedType:             ErrUnsupportedType,
	CodeParseError:                  ErrParse,
	CodeInvalidStrictness:           ErrInvalidStrictness,
	CodeMissingSchema:               ErrMissingSchema,
}

// String returns the code name.
func (c ErrorCode) String() string {
	switch c {
	case CodeFunctionNotConvertible:
		return "FunctionNotConvertible"
	case CodeNullNotConvertible:
		return "NullNotConvertible"
	case CodeUndefinedNotConvertible:
		return "UndefinedNotConvertible"
	case CodeEmbeddedStructureNotAllowed:
		return "EmbeddedStructureNotAllowed"
	case CodeSequenceNotAllowed:
		return "SequenceNotAllowed"
	case CodeUnsupportedType:
		return "UnsupportedType"
	case CodeParseError:
		return "ParseError"
	case CodeInvalidStrictness:
		return "InvalidStrictness"
	case CodeMissingSchema:
		return "MissingSchema"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Class returns the class of the code.
func (c ErrorCode) Class() ErrorClass {
	switch c {
	case CodeUndefinedNotConvertible:
		return ClassAbsence
	case CodeEmbeddedStructureNotAllowed:
		return ClassEmbedded
	case CodeFunctionNotConvertible, CodeNullNotConvertible, CodeSequenceNotAllowed:
		return ClassDisallowed
	case CodeUnsupportedType, CodeParseError:
		return ClassCodec
	default:
		return ClassUsage
	}
}

// ConversionError is the base error type for every failure of the engine.
type ConversionError struct {
	Code    ErrorCode
	Tag     Tag    // Tag of the offending value
	Path    string // Location of the offending value, "$" for the root
	Message string
	Err     error // Underlying cause, if any
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.String()
		if s, ok := codeSentinels[e.Code]; ok {
			msg = s.Error()
		}
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Class returns the class of the error code.
func (e *ConversionError) Class() ErrorClass {
	return e.Code.Class()
}

// Unwrap exposes the code sentinel and the underlying cause.
func (e *ConversionError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := codeSentinels[e.Code]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ParseError is returned when text cannot be decoded at the requested tag.
type ParseError struct {
	ConversionError
	Text string // Input that failed to decode
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse %q as %s", e.Text, e.Tag)
	if e.Path != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Path)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// NewConversionError creates a ConversionError for the value at path.
func NewConversionError(code ErrorCode, tag Tag, path, message string) *ConversionError {
	return &ConversionError{
		Code:    code,
		Tag:     tag,
		Path:    path,
		Message: message,
	}
}

// NewParseError creates a ParseError for text that is not a valid tag literal.
func NewParseError(tag Tag, text, message string, cause error) *ParseError {
	return &ParseError{
		ConversionError: ConversionError{
			Code:    CodeParseError,
			Tag:     tag,
			Message: message,
			Err:     cause,
		},
		Text: text,
	}
}

// AsConversionError extracts the ConversionError carried by err, including the
// one embedded in a ParseError.
func AsConversionError(err error) (*ConversionError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return &pe.ConversionError, true
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func errUnsupported(tag Tag, path string) *ConversionError {
	return NewConversionError(CodeUnsupportedType, tag, path, fmt.Sprintf("unsupported type %s", tag))
}

func errNotConvertible(tag Tag, path, form string) *ConversionError {
	var code ErrorCode
	switch tag {
	case TagFunction:
		code = CodeFunctionNotConvertible
	case TagNull:
		code = CodeNullNotConvertible
	default:
		code = CodeUndefinedNotConvertible
	}
	return NewConversionError(code, tag, path, fmt.Sprintf("cannot convert %s to %s", tag, form))
}
