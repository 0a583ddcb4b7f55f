package decor

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

var kinds = map[string]reflect.Type{
	"string":   reflect.TypeFor[string](),
	"int":      reflect.TypeFor[int](),
	"int64":    reflect.TypeFor[int64](),
	"float64":  reflect.TypeFor[float64](),
	"bool":     reflect.TypeFor[bool](),
	"error":    reflect.TypeFor[error](),
	"stringer": reflect.TypeFor[fmt.Stringer](),
	"time":     reflect.TypeFor[time.Time](),
	"duration": reflect.TypeFor[time.Duration](),
}

type definitionFile struct {
	Presenters []typeSpec `yaml:"presenters"`
}

type typeSpec struct {
	Name        string     `yaml:"name"`
	Inherit     string     `yaml:"inherit"`
	Formatted   []string   `yaml:"formatted"`
	Presented   []string   `yaml:"presented"`
	Collections []string   `yaml:"collections"`
	Formats     []ruleSpec `yaml:"formats"`
}

type ruleSpec struct {
	line int

	hasExact bool
	exact    any
	pattern  string
	kind     string

	hasValue bool
	value    any
	truncate int
	pad      int
	padLeft  int
	upper    bool
	lower    bool
}

// UnmarshalYAML records which keys are present so that "exact: null" can be
// told apart from a missing exact matcher.
func (s *ruleSpec) UnmarshalYAML(node *yaml.Node) error {
	s.line = node.Line
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: format rule must be a mapping", ErrInvalidDefinition, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		var err error
		switch key {
		case "exact":
			s.hasExact = true
			err = val.Decode(&s.exact)
		case "pattern":
			err = val.Decode(&s.pattern)
		case "kind":
			err = val.Decode(&s.kind)
		case "value":
			s.hasValue = true
			err = val.Decode(&s.value)
		case "truncate":
			err = val.Decode(&s.truncate)
		case "pad":
			err = val.Decode(&s.pad)
		case "pad_left":
			err = val.Decode(&s.padLeft)
		case "upper":
			err = val.Decode(&s.upper)
		case "lower":
			err = val.Decode(&s.lower)
		default:
			return fmt.Errorf("%w: line %d: unknown format key %q", ErrInvalidDefinition, val.Line, key)
		}
		if err != nil {
			return fmt.Errorf("%w: line %d: %s: %w", ErrInvalidDefinition, val.Line, key, err)
		}
	}
	return nil
}

func (s *ruleSpec) matcher() (Matcher, error) {
	var ms []Matcher
	if s.hasExact {
		ms = append(ms, Exact(s.exact))
	}
	if s.pattern != "" {
		re, err := regexp.Compile(s.pattern)
		if err != nil {
			return Matcher{}, fmt.Errorf("%w: line %d: pattern: %w", ErrInvalidDefinition, s.line, err)
		}
		ms = append(ms, Pattern(re))
	}
	if s.kind != "" {
		t, ok := kinds[s.kind]
		if !ok {
			return Matcher{}, fmt.Errorf("%w: line %d: unknown kind %q", ErrInvalidDefinition, s.line, s.kind)
		}
		ms = append(ms, KindOf(t))
	}
	if len(ms) != 1 {
		return Matcher{}, fmt.Errorf("%w: line %d: want exactly one of exact, pattern, kind", ErrInvalidDefinition, s.line)
	}
	return ms[0], nil
}

func (s *ruleSpec) transform() (Transform, error) {
	var ts []Transform
	if s.hasValue {
		ts = append(ts, Constant(s.value))
	}
	if s.truncate > 0 {
		ts = append(ts, Truncate(s.truncate))
	}
	if s.pad > 0 {
		ts = append(ts, PadRight(s.pad))
	}
	if s.padLeft > 0 {
		ts = append(ts, PadLeft(s.padLeft))
	}
	if s.upper {
		ts = append(ts, Upper())
	}
	if s.lower {
		ts = append(ts, Lower())
	}
	if len(ts) != 1 {
		return nil, fmt.Errorf("%w: line %d: want exactly one of value, truncate, pad, pad_left, upper, lower", ErrInvalidDefinition, s.line)
	}
	return ts[0], nil
}

// Load reads YAML presenter definitions from rd, defines every type and
// registers them all. A type may inherit from one defined earlier in the same
// document or from one already registered. Nothing is registered on error.
func (r *Registry) Load(rd io.Reader) ([]*Type, error) {
	var file definitionFile
	if err := yaml.NewDecoder(rd).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if errors.Is(err, ErrInvalidDefinition) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	local := make(map[string]*Type, len(file.Presenters))
	types := make([]*Type, 0, len(file.Presenters))
	for _, spec := range file.Presenters {
		t, err := r.define(spec, local)
		if err != nil {
			return nil, err
		}
		local[t.name] = t
		types = append(types, t)
	}
	if err := r.Register(types...); err != nil {
		return nil, err
	}
	r.logger.Debug().Int("types", len(types)).Msg("presenter definitions loaded")
	return types, nil
}

func (r *Registry) define(spec typeSpec, local map[string]*Type) (*Type, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: presenter name is required", ErrInvalidDefinition)
	}
	opts := []Option{
		Formatted(spec.Formatted...),
		Presented(spec.Presented...),
		PresentedCollection(spec.Collections...),
	}
	if spec.Inherit != "" {
		parent, ok := local[spec.Inherit]
		if !ok {
			parent, ok = r.Lookup(spec.Inherit)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s: parent %q is not defined", ErrInvalidDefinition, spec.Name, spec.Inherit)
		}
		opts = append(opts, Inherit(parent))
	}
	for i := range spec.Formats {
		rs := &spec.Formats[i]
		m, err := rs.matcher()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		t, err := rs.transform()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		opts = append(opts, Format(m, t))
	}
	return Define(spec.Name, opts...), nil
}
