package canonform

import "fmt"

// Form names a canonical target form.
type Form int

const (
	FormJSON Form = iota
	FormQSO
	FormPSO
)

func (f Form) String() string {
	switch f {
	case FormJSON:
		return "json"
	case FormQSO:
		return "qso"
	case FormPSO:
		return "pso"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// ParseForm returns the form named s.
func ParseForm(s string) (Form, error) {
	for _, f := range []Form{FormJSON, FormQSO, FormPSO} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown form %q", s)
}

// JSONStrictness controls which failures a JSON conversion drops.
type JSONStrictness int

const (
	JSONLenient JSONStrictness = iota // drop every failing child
	JSONStrict                        // drop only undefined children
)

// QSOStrictness controls which failures a QSO conversion drops.
type QSOStrictness int

const (
	// QSONormalize drops every failing child, including sequences or maps
	// embedded in a sequence.
	QSONormalize QSOStrictness = iota
	// QSORejectEmbedded fails on sequences or maps embedded in a sequence and
	// drops every other failing child.
	QSORejectEmbedded
	// QSOStrict fails on everything but undefined children.
	QSOStrict
)

// DefaultQSOStrictness is the level used when none is configured.
const DefaultQSOStrictness = QSORejectEmbedded

// PSOStrictness controls whether a PSO conversion drops failing children.
type PSOStrictness int

const (
	PSOStrict  PSOStrictness = iota // every failure propagates
	PSOLenient                      // failing keys are omitted
)

var (
	jsonStrictnessNames = []string{JSONLenient: "lenient", JSONStrict: "strict"}
	qsoStrictnessNames  = []string{QSONormalize: "normalize", QSORejectEmbedded: "reject-embedded", QSOStrict: "strict"}
	psoStrictnessNames  = []string{PSOStrict: "strict", PSOLenient: "lenient"}
)

func (s JSONStrictness) String() string { return policyName(jsonStrictnessNames, int(s)) }
func (s QSOStrictness) String() string  { return policyName(qsoStrictnessNames, int(s)) }
func (s PSOStrictness) String() string  { return policyName(psoStrictnessNames, int(s)) }

// Validate rejects values outside the declared constants.
func (s JSONStrictness) Validate() error {
	return validatePolicy(FormJSON, jsonStrictnessNames, int(s))
}

// Validate rejects values outside the declared constants.
func (s QSOStrictness) Validate() error {
	return validatePolicy(FormQSO, qsoStrictnessNames, int(s))
}

// Validate rejects values outside the declared constants.
func (s PSOStrictness) Validate() error {
	return validatePolicy(FormPSO, psoStrictnessNames, int(s))
}

// JSONStrictnessNames lists the accepted names of JSONStrictness values.
func JSONStrictnessNames() []string { return append([]string(nil), jsonStrictnessNames...) }

// QSOStrictnessNames lists the accepted names of QSOStrictness values.
func QSOStrictnessNames() []string { return append([]string(nil), qsoStrictnessNames...) }

// PSOStrictnessNames lists the accepted names of PSOStrictness values.
func PSOStrictnessNames() []string { return append([]string(nil), psoStrictnessNames...) }

func ParseJSONStrictness(name string) (JSONStrictness, error) {
	i, err := parsePolicy(FormJSON, jsonStrictnessNames, name)
	return JSONStrictness(i), err
}

func ParseQSOStrictness(name string) (QSOStrictness, error) {
	i, err := parsePolicy(FormQSO, qsoStrictnessNames, name)
	return QSOStrictness(i), err
}

func ParsePSOStrictness(name string) (PSOStrictness, error) {
	i, err := parsePolicy(FormPSO, psoStrictnessNames, name)
	return PSOStrictness(i), err
}

// QSOStrictnessFromLevel maps the numeric levels 0, 1 and 2.
func QSOStrictnessFromLevel(level int) (QSOStrictness, error) {
	s := QSOStrictness(level)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// PSOStrictnessFromBool maps true to PSOStrict and false to PSOLenient.
func PSOStrictnessFromBool(strict bool) PSOStrictness {
	if strict {
		return PSOStrict
	}
	return PSOLenient
}

// JSONStrictnessFromBool maps true to JSONStrict and false to JSONLenient.
func JSONStrictnessFromBool(strict bool) JSONStrictness {
	if strict {
		return JSONStrict
	}
	return JSONLenient
}

func policyName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("invalid(%d)", i)
}

func validatePolicy(form Form, names []string, i int) error {
	if i < 0 || i >= len(names) {
		return NewConversionError(CodeInvalidStrictness, TagUndefined, "",
			fmt.Sprintf("invalid %s strictness %d", form, i))
	}
	return nil
}

func parsePolicy(form Form, names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, NewConversionError(CodeInvalidStrictness, TagUndefined, "",
		fmt.Sprintf("invalid %s strictness %q, expected one of %q", form, name, names))
}
