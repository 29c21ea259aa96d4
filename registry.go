package genspec

import (
	"fmt"
	"slices"
)

// Primitive reports whether v is an instance of a primitive type.
type Primitive func(v Value) bool

// Registry maps type names to primitives and entity types. Populate it once,
// then call [Registry.Seal] before validating concurrently: a sealed registry
// is never written again and is safe for concurrent readers.
type Registry struct {
	types  map[string]any
	order  []string
	sealed bool
}

// NewRegistry returns a registry holding the primitives string, integer,
// number and boolean. A number accepts integers as well.
func NewRegistry() *Registry {
	r := &Registry{types: map[string]any{}}
	for _, p := range []struct {
		name string
		f    Primitive
	}{
		{"string", isString},
		{"integer", isInteger},
		{"number", isNumber},
		{"boolean", isBoolean},
	} {
		if err := r.RegisterPrimitive(p.name, p.f); err != nil {
			panic(err)
		}
	}
	return r
}

func isString(v Value) bool {
	_, ok := v.(String)
	return ok
}

func isInteger(v Value) bool {
	_, ok := v.(Integer)
	return ok
}

func isNumber(v Value) bool {
	switch v.(type) {
	case Number, Integer:
		return true
	}
	return false
}

func isBoolean(v Value) bool {
	_, ok := v.(Boolean)
	return ok
}

// RegisterPrimitive registers a primitive type under name.
func (r *Registry) RegisterPrimitive(name string, f Primitive) error {
	if err := r.claim(name); err != nil {
		return err
	}
	r.types[name] = f
	return nil
}

// Define declares an entity type under name. Field type expressions are parsed
// here; names they reference may be defined later and are checked by Seal.
func (r *Registry) Define(name string, d Declaration) (*EntityType, error) {
	if r.sealed {
		return nil, fmt.Errorf("%w: cannot define %s", ErrRegistrySealed, name)
	}
	t, err := newEntityType(r, name, d)
	if err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}
	if err := r.claim(name); err != nil {
		return nil, err
	}
	r.types[name] = t
	return t, nil
}

// MustDefine is like [Registry.Define] but panics on error.
func (r *Registry) MustDefine(name string, d Declaration) *EntityType {
	t, err := r.Define(name, d)
	if err != nil {
		panic(err)
	}
	return t
}

func (r *Registry) claim(name string) error {
	if r.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, name)
	}
	if !simpleTypeRegexp.MatchString(name) {
		return fmt.Errorf("%w: type name %q", ErrMalformedType, name)
	}
	if _, ok := r.types[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the entity type registered under name.
func (r *Registry) Lookup(name string) (*EntityType, bool) {
	t, ok := r.types[name].(*EntityType)
	return t, ok
}

// Names returns every registered type name in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Seal checks that every type name referenced by an entity declaration is
// registered, then freezes the registry.
func (r *Registry) Seal() error {
	for _, name := range r.order {
		t, ok := r.types[name].(*EntityType)
		if !ok {
			continue
		}
		for _, ref := range t.references() {
			if _, ok := r.types[ref]; !ok {
				return fmt.Errorf("%w: %q referenced by %s", ErrUnknownType, ref, name)
			}
		}
	}
	r.sealed = true
	return nil
}

// Sealed reports whether Seal has succeeded.
func (r *Registry) Sealed() bool { return r.sealed }

// ConformsTo parses typ and reports whether v conforms to it.
func (r *Registry) ConformsTo(typ string, v Value) (bool, error) {
	x, err := ParseType(typ)
	if err != nil {
		return false, err
	}
	return r.Conforms(x, v)
}

// Conforms reports whether v structurally conforms to x. An entity-typed name
// accepts any *Entity of exactly that type; the entity's own fields are
// checked by its Validate. The error is non-nil only for a name that is not
// registered.
func (r *Registry) Conforms(x Expr, v Value) (bool, error) {
	switch x := x.(type) {
	case Simple:
		switch t := r.types[x.Name].(type) {
		case Primitive:
			return t(v), nil
		case *EntityType:
			e, ok := v.(*Entity)
			return ok && e != nil && e.typ == t, nil
		default:
			return false, fmt.Errorf("%w: %q", ErrUnknownType, x.Name)
		}
	case Sequence:
		l, ok := v.(List)
		if !ok {
			return false, nil
		}
		for _, elem := range l {
			if ok, err := r.Conforms(x.Elem, elem); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case Mapping:
		m, ok := v.(Map)
		if !ok {
			return false, nil
		}
		for k, elem := range m {
			if ok, err := r.Conforms(x.Key, String(k)); err != nil || !ok {
				return false, err
			}
			if ok, err := r.Conforms(x.Elem, elem); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case Union:
		if ok, err := r.Conforms(x.Left, v); err != nil || ok {
			return ok, err
		}
		return r.Conforms(x.Right, v)
	}
	return false, fmt.Errorf("%w: %v", ErrMalformedType, x)
}
