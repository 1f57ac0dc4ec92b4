package canonform

// Classifier decides which tag the engine dispatches a value on.
type Classifier interface {
	Classify(v Value) Tag
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(v Value) Tag

// Classify implements the Classifier interface.
func (f ClassifierFunc) Classify(v Value) Tag { return f(v) }

// TagClassifier classifies a value by its own discriminant.
type TagClassifier struct{}

// Classify implements the Classifier interface.
func (TagClassifier) Classify(v Value) Tag { return v.Tag() }
