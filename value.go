package genspec

import (
	"fmt"
	"math"
	"reflect"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindEntity
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindEntity:
		return "entity"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a field value stored on an [Entity]. The set of variants is closed:
// [String], [Integer], [Number], [Boolean], [*Entity], [List] and [Map].
type Value interface {
	Kind() Kind
	value()
}

type (
	// String is a text scalar.
	String string
	// Integer is a whole-number scalar.
	Integer int64
	// Number is a floating point scalar.
	Number float64
	// Boolean is a true/false scalar.
	Boolean bool
	// List is an ordered sequence of values.
	List []Value
	// Map is a string-keyed collection of values.
	Map map[string]Value
)

func (String) Kind() Kind  { return KindString }
func (Integer) Kind() Kind { return KindInteger }
func (Number) Kind() Kind  { return KindNumber }
func (Boolean) Kind() Kind { return KindBoolean }
func (List) Kind() Kind    { return KindList }
func (Map) Kind() Kind     { return KindMap }

func (String) value()  {}
func (Integer) value() {}
func (Number) value()  {}
func (Boolean) value() {}
func (List) value()    {}
func (Map) value()     {}

// Strings returns a List of String values.
func Strings(ss ...string) List {
	l := make(List, len(ss))
	for i, s := range ss {
		l[i] = String(s)
	}
	return l
}

// ValueOf converts a Go value into a [Value]. Scalars of any string, bool,
// integer or float kind, slices, arrays and string-keyed maps are supported,
// as are values that already implement Value. A nil input yields a nil Value.
func ValueOf(a any) (Value, error) {
	switch a := a.(type) {
	case nil:
		return nil, nil
	case Value:
		return a, nil
	case string:
		return String(a), nil
	case bool:
		return Boolean(a), nil
	case int:
		return Integer(a), nil
	case int64:
		return Integer(a), nil
	case float64:
		return Number(a), nil
	}
	return valueOf(reflect.ValueOf(a))
}

func valueOf(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Boolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows integer", ErrUnsupportedValue, u)
		}
		return Integer(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List{}, nil
		}
		l := make(List, rv.Len())
		for i := range rv.Len() {
			v, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			l[i] = v
		}
		return l, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key must be a string, got %s", ErrUnsupportedValue, rv.Type().Key())
		}
		m := make(Map, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			m[iter.Key().String()] = v
		}
		return m, nil
	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		return ValueOf(rv.Elem().Interface())
	}
	if !rv.IsValid() {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
}

// plain converts v to its language-agnostic form. Entities are converted
// without being validated again.
func plain(v Value) any {
	switch v := v.(type) {
	case String:
		return string(v)
	case Integer:
		return int64(v)
	case Number:
		return float64(v)
	case Boolean:
		return bool(v)
	case *Entity:
		if v == nil {
			return nil
		}
		return v.plain()
	case List:
		out := make([]any, len(v))
		for i := range v {
			out[i] = plain(v[i])
		}
		return out
	case Map:
		out := make(map[string]any, len(v))
		for k := range v {
			out[k] = plain(v[k])
		}
		return out
	}
	return nil
}
