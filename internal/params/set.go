package params

import (
	"fmt"
	"sort"
)

// LookupFunc reports the value of an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ValidationError rejects a run before any build step executes.
type ValidationError struct {
	Option string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Option, e.Value, e.Reason)
}

// Set holds a value for every option of Schema.
type Set struct {
	values map[string]Value
}

// Load resolves every option from overrides, then env, then its default,
// and verifies the result. Unknown override keys are rejected.
func Load(overrides map[string]any, env LookupFunc) (*Set, error) {
	var unknown []string
	for k := range overrides {
		if _, ok := Lookup(k); !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{Option: unknown[0], Reason: "unknown option"}
	}

	s := &Set{values: make(map[string]Value, len(Schema))}
	for _, o := range Schema {
		v, err := resolve(o, overrides, env)
		if err != nil {
			return nil, err
		}
		if o.Verify != nil && v.Kind() != KindAbsent {
			if err := o.Verify(v); err != nil {
				return nil, &ValidationError{Option: o.Name, Value: v.String(), Reason: err.Error()}
			}
		}
		s.values[o.Name] = v
	}
	return s, nil
}

func resolve(o Option, overrides map[string]any, env LookupFunc) (Value, error) {
	if raw, ok := overrides[o.Name]; ok && raw != nil {
		v, err := coerce(o.Kind, raw)
		if err != nil {
			return Value{}, &ValidationError{Option: o.Name, Reason: err.Error()}
		}
		return v, nil
	}
	if env != nil {
		for _, name := range o.Env {
			raw, ok := env(name)
			if !ok {
				continue
			}
			v, err := parseEnv(o.Kind, raw)
			if err != nil {
				return Value{}, &ValidationError{Option: o.Name, Value: raw, Reason: fmt.Sprintf("%s from %s", err, name)}
			}
			return v, nil
		}
	}
	return o.Default, nil
}

// Get returns the value of the named option. Unknown names are Absent.
func (s *Set) Get(name string) Value {
	return s.values[name]
}

func (s *Set) String(name string) string {
	return s.values[name].AsString()
}

func (s *Set) Bool(name string) bool {
	return s.values[name].AsBool()
}

func (s *Set) List(name string) []string {
	return s.values[name].AsList()
}

// Set replaces the value of the named option.
func (s *Set) Set(name string, v Value) {
	s.values[name] = v
}
