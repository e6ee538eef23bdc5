package params

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindBool
	KindList
)

func (k Kind) String() string {
	return []string{"absent", "string", "boolean", "list"}[k]
}

// Value holds one option value. The zero Value is Absent.
type Value struct {
	kind Kind
	s    string
	b    bool
	list []string
}

func Absent() Value {
	return Value{}
}

func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string{}, items...)}
}

func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the string variant, or "" for any other kind.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// AsBool returns the boolean variant, or false for any other kind.
func (v Value) AsBool() bool {
	return v.kind == KindBool && v.b
}

// AsList returns a copy of the list variant, or nil for any other kind.
func (v Value) AsList() []string {
	if v.kind != KindList {
		return nil
	}
	return append([]string{}, v.list...)
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// parseEnv converts an environment string to a Value of the given kind.
// Lists are comma separated.
func parseEnv(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := parseBool(raw)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case KindList:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return List(items...), nil
	default:
		return Str(raw), nil
	}
}

// coerce converts a decoded config or flag value to a Value of the given kind.
func coerce(kind Kind, raw any) (Value, error) {
	if raw == nil {
		return Absent(), nil
	}
	if s, ok := raw.(string); ok {
		return parseEnv(kind, s)
	}
	switch kind {
	case KindBool:
		if b, ok := raw.(bool); ok {
			return Bool(b), nil
		}
	case KindList:
		switch l := raw.(type) {
		case []string:
			return List(l...), nil
		case []any:
			items := make([]string, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return Value{}, fmt.Errorf("list element %v is not a string", item)
				}
				items = append(items, s)
			}
			return List(items...), nil
		}
	case KindString:
		switch n := raw.(type) {
		case int:
			return Str(strconv.Itoa(n)), nil
		case int64:
			return Str(strconv.FormatInt(n, 10)), nil
		case uint64:
			return Str(strconv.FormatUint(n, 10)), nil
		case float64:
			return Value{}, fmt.Errorf("decimal number %v would lose its digits, quote the value", n)
		}
	}
	return Value{}, fmt.Errorf("expected %s, got %T", kind, raw)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}
