package template

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
)

// Binding is a single key-to-value substitution entry.
type Binding struct {
	Key   string
	Value any
}

// Bindings is an ordered list of substitutions. Binding order decides which
// placeholder a value lands in when values themselves contain placeholder text.
type Bindings []Binding

// FromMap converts a map to Bindings in ascending key order.
func FromMap[V any](m map[string]V) Bindings {
	if m == nil {
		return nil
	}
	keys := slices.Sorted(maps.Keys(m))
	b := make(Bindings, 0, len(keys))
	for _, k := range keys {
		b = append(b, Binding{Key: k, Value: m[k]})
	}
	return b
}

// Get returns the value of the first binding for key.
func (b Bindings) Get(key string) (any, bool) {
	for _, bd := range b {
		if bd.Key == key {
			return bd.Value, true
		}
	}
	return nil, false
}

// Keys returns the binding keys in order.
func (b Bindings) Keys() []string {
	keys := make([]string, len(b))
	for i, bd := range b {
		keys[i] = bd.Key
	}
	return keys
}

// With returns a copy of b where each binding in other replaces the binding
// with the same key in place, or is appended when the key is new.
func (b Bindings) With(other Bindings) Bindings {
	out := slices.Clone(b)
	for _, bd := range other {
		idx := slices.IndexFunc(out, func(x Binding) bool { return x.Key == bd.Key })
		if idx >= 0 {
			out[idx].Value = bd.Value
		} else {
			out = append(out, bd)
		}
	}
	return out
}

// Map returns the bindings as a map. Later duplicates win.
func (b Bindings) Map() map[string]any {
	m := make(map[string]any, len(b))
	for _, bd := range b {
		m[bd.Key] = bd.Value
	}
	return m
}

// AsBindings converts mapping-typed data into Bindings using the same
// rules as Bind. Maps convert in ascending key order.
// Returns ErrNotMapping for anything else.
func AsBindings(data any) (Bindings, error) {
	b, ok := resolveBindings(data)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, data)
	}
	return b, nil
}

// resolveBindings turns the data argument of Bind into Bindings.
// Reports false when data is not mapping-typed.
func resolveBindings(data any) (Bindings, bool) {
	switch d := data.(type) {
	case nil:
		return nil, false
	case Bindings:
		return d, true
	case []Binding:
		return Bindings(d), true
	case map[string]any:
		return FromMap(d), true
	case map[string]string:
		return FromMap(d), true
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := make([]string, 0, v.Len())
	values := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value().Interface()
	}
	slices.Sort(keys)
	b := make(Bindings, 0, len(keys))
	for _, k := range keys {
		b = append(b, Binding{Key: k, Value: values[k]})
	}
	return b, true
}

// stringify renders a binding value the way it appears in output.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
