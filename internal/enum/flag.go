// Package enum provides a pflag value restricted to a fixed set of options.
package enum

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"
)

const Type = "enum"

// Flag is a pflag.Value accepting one of a fixed set of options. The first
// option is the default.
type Flag struct {
	target  *string
	options []string
}

// New returns a Flag defaulting to the first option.
func New(options ...string) *Flag {
	if len(options) == 0 {
		panic("options must not be empty")
	}
	options = slices.Clone(options)
	return &Flag{target: &options[0], options: options}
}

func (f *Flag) Type() string {
	return Type
}

func (f *Flag) String() string {
	return *f.target
}

func (f *Flag) Set(value string) error {
	if !slices.Contains(f.options, value) {
		return fmt.Errorf("expected one of %q", f.options)
	}
	f.target = &value
	return nil
}

// Var registers an enum flag on f.
func Var(f *pflag.FlagSet, name string, options []string, usage string) {
	sorted := slices.Sorted(slices.Values(options))
	f.Var(New(options...), name, fmt.Sprintf("%s\n(must be one of %v)", usage, sorted))
}

// Get returns the value of the enum flag called name.
func Get(f *pflag.FlagSet, name string) (string, error) {
	flag := f.Lookup(name)
	if flag == nil {
		return "", fmt.Errorf("flag accessed but not defined: %s", name)
	}
	if flag.Value.Type() != Type {
		return "", fmt.Errorf("trying to get %s value of flag of type %s", Type, flag.Value.Type())
	}
	return flag.Value.String(), nil
}
