package canonform

import (
	"log/slog"
	"strconv"
)

const rootPath = "$"

// Engine converts values into canonical forms. An Engine holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	classifier Classifier
	logger     *slog.Logger
	sink       DropSink
}

// DropSink receives every failure that a conversion resolved by omitting the
// failing element or key.
type DropSink interface {
	OnDrop(form Form, err *ConversionError)
}

type DropSinkFunc func(form Form, err *ConversionError)

func (f DropSinkFunc) OnDrop(form Form, err *ConversionError) { f(form, err) }

func NewEngine(opts ...func(*Engine)) *Engine {
	e := &Engine{
		classifier: TagClassifier{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// WithClassifier replaces the classifier used for dispatch.
func WithClassifier(c Classifier) func(*Engine) {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithLogger sets the logger dropped values are reported to at debug level.
func WithLogger(l *slog.Logger) func(*Engine) {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithDropSink(s DropSink) func(*Engine) {
	return func(e *Engine) { e.sink = s }
}

var defaultEngine = NewEngine()

// ToJSON converts v to its JSON form using the default engine.
func ToJSON(v Value, strictness JSONStrictness) (any, error) {
	return defaultEngine.ToJSON(v, strictness)
}

// ToQSO converts v to its QSO form using the default engine.
func ToQSO(v Value, strictness QSOStrictness) (any, error) {
	return defaultEngine.ToQSO(v, strictness)
}

// ToPSO converts v to its PSO form using the default engine.
func ToPSO(v Value, strictness PSOStrictness) (any, error) {
	return defaultEngine.ToPSO(v, strictness)
}

// dropRule reports whether a failing child may be omitted from its parent.
type dropRule func(err *ConversionError) bool

// resolve returns nil when err is dropped and err otherwise.
// Codec and usage failures are never dropped.
func (e *Engine) resolve(form Form, err *ConversionError, drop dropRule) *ConversionError {
	switch err.Class() {
	case ClassCodec, ClassUsage:
		return err
	}
	if !drop(err) {
		return err
	}
	e.logger.Debug("dropped value",
		slog.String("form", form.String()),
		slog.String("path", err.Path),
		slog.String("code", err.Code.String()))
	if e.sink != nil {
		e.sink.OnDrop(form, err)
	}
	return nil
}

// classify asks the classifier for the tag of v. A classifier may demote any
// value to function, null or undefined; any other disagreement with the
// value's own tag is a codec failure.
func (e *Engine) classify(v Value, path string) (Tag, *ConversionError) {
	tag := e.classifier.Classify(v)
	switch tag {
	case TagFunction, TagNull, TagUndefined:
		return tag, nil
	}
	if tag != v.tag {
		return tag, NewConversionError(CodeUnsupportedType, tag, path,
			"classified as "+tag.String()+" but holds "+v.tag.String())
	}
	return tag, nil
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func keyPath(path, key string) string {
	if isIdentifier(key) {
		return path + "." + key
	}
	return path + "[" + strconv.Quote(key) + "]"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
