package schema

import (
	"fmt"
	"maps"
	"slices"

	"sigs.k8s.io/yaml"

	"github.com/grahms/canonform"
)

const (
	typeKey    = "$type"
	patternKey = "$pattern"
)

// Load reads a field tree from a YAML or JSON document:
//
//	name: string              # a tag name declares a leaf
//	tags: [string]            # a one-element list declares a sequence
//	address:                  # a mapping declares an object
//	  zip: {$type: string, $pattern: '^\d{5}$'}
//
// A mapping holding $type declares a leaf with an optional $pattern validator.
func Load(data []byte) (*Field, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal schema: %w", err)
	}
	return build(doc, "$")
}

func build(node any, path string) (*Field, error) {
	switch n := node.(type) {
	case string:
		return buildLeaf(n, path)
	case []any:
		if len(n) != 1 {
			return nil, fmt.Errorf("%s: a sequence must declare exactly one element, got %d", path, len(n))
		}
		elem, err := build(n[0], path+"[]")
		if err != nil {
			return nil, err
		}
		return List(elem), nil
	case map[string]any:
		if t, ok := n[typeKey]; ok {
			return buildAnnotated(n, t, path)
		}
		fields := make(map[string]*Field, len(n))
		for _, k := range slices.Sorted(maps.Keys(n)) {
			f, err := build(n[k], path+"."+k)
			if err != nil {
				return nil, err
			}
			fields[k] = f
		}
		return Object(fields), nil
	default:
		return nil, fmt.Errorf("%s: unexpected %T in schema", path, node)
	}
}

func buildLeaf(name, path string) (*Field, error) {
	tag, err := canonform.ParseTag(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	switch tag {
	case canonform.TagArray, canonform.TagObject, canonform.TagFunction:
		return nil, fmt.Errorf("%s: %s cannot be declared by name", path, tag)
	}
	return Leaf(tag), nil
}

func buildAnnotated(n map[string]any, t any, path string) (*Field, error) {
	name, ok := t.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %s must be a tag name", path, typeKey)
	}
	f, err := buildLeaf(name, path)
	if err != nil {
		return nil, err
	}
	for k, v := range n {
		switch k {
		case typeKey:
		case patternKey:
			pattern, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %s must be a string", path, patternKey)
			}
			rv, err := NewRegexValidator(pattern, "")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			f.Validators = append(f.Validators, rv)
		default:
			return nil, fmt.Errorf("%s: unknown annotation %q", path, k)
		}
	}
	return f, nil
}
