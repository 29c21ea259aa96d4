package genspec

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ExtensionPrefix marks caller-defined fields on entities that allow extensions.
const ExtensionPrefix = "x-"

// Field declares a field name (or, in [Declaration.Patterns], a regular
// expression over field names) and its type expression.
type Field struct {
	Name string
	Type string
}

// Declaration describes the fields an entity type accepts.
type Declaration struct {
	// Required fields must be set before validation succeeds.
	Required []Field
	// Optional fields may be set.
	Optional []Field
	// Patterns match field names that are neither required nor optional.
	// They are tried in order and anchored at the start of the name.
	Patterns []Field
	// Extensions permits any field starting with ExtensionPrefix.
	Extensions bool
	// Check runs after the structural checks of an entity have passed.
	Check func(e *Entity) error
}

// EntityType is a registered, validated shape. Create one with [Registry.Define].
type EntityType struct {
	registry   *Registry
	name       string
	required   []fieldRule
	fixed      map[string]fieldRule
	patterns   []patternRule
	extensions bool
	check      func(*Entity) error
}

type fieldRule struct {
	name string
	expr Expr
}

type patternRule struct {
	re   *regexp.Regexp
	expr Expr
}

func newEntityType(r *Registry, name string, d Declaration) (*EntityType, error) {
	t := &EntityType{
		registry:   r,
		name:       name,
		fixed:      map[string]fieldRule{},
		extensions: d.Extensions,
		check:      d.Check,
	}

	add := func(f Field) (fieldRule, error) {
		if _, ok := t.fixed[f.Name]; ok {
			return fieldRule{}, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		x, err := ParseType(f.Type)
		if err != nil {
			return fieldRule{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		rule := fieldRule{name: f.Name, expr: x}
		t.fixed[f.Name] = rule
		return rule, nil
	}

	for _, f := range d.Required {
		rule, err := add(f)
		if err != nil {
			return nil, err
		}
		t.required = append(t.required, rule)
	}
	for _, f := range d.Optional {
		if _, err := add(f); err != nil {
			return nil, err
		}
	}
	for _, f := range d.Patterns {
		re, err := regexp.Compile("^(?:" + f.Name + ")")
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrMalformedPattern, f.Name, err)
		}
		x, err := ParseType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", f.Name, err)
		}
		t.patterns = append(t.patterns, patternRule{re: re, expr: x})
	}
	return t, nil
}

// Name returns the registered type name.
func (t *EntityType) Name() string { return t.name }

// Extensions reports whether the type accepts extension fields.
func (t *EntityType) Extensions() bool { return t.extensions }

// RequiredFields returns the required field names in declaration order.
func (t *EntityType) RequiredFields() []string {
	names := make([]string, len(t.required))
	for i, f := range t.required {
		names[i] = f.name
	}
	return names
}

// New returns an empty entity of this type.
func (t *EntityType) New() *Entity {
	return &Entity{typ: t, fields: map[string]Value{}}
}

func (t *EntityType) references() []string {
	var names []string
	for _, name := range slices.Sorted(maps.Keys(t.fixed)) {
		names = typeNames(t.fixed[name].expr, names)
	}
	for _, p := range t.patterns {
		names = typeNames(p.expr, names)
	}
	return names
}

// Entity is a node of a document graph. Fields are assigned without checks;
// Validate and PlainData check the whole reachable graph.
type Entity struct {
	typ    *EntityType
	fields map[string]Value
	order  []string
}

func (*Entity) Kind() Kind { return KindEntity }
func (*Entity) value()     {}

// Type returns the entity's type.
func (e *Entity) Type() *EntityType { return e.typ }

func (e *Entity) String() string { return "<" + e.typ.name + ">" }

// Set stores v under name. A nil value clears the field.
func (e *Entity) Set(name string, v Value) *Entity {
	if isNull(v) {
		e.Unset(name)
		return e
	}
	if _, ok := e.fields[name]; !ok {
		e.order = append(e.order, name)
	}
	e.fields[name] = v
	return e
}

// Unset removes a field.
func (e *Entity) Unset(name string) {
	if _, ok := e.fields[name]; !ok {
		return
	}
	delete(e.fields, name)
	e.order = slices.DeleteFunc(e.order, func(s string) bool { return s == name })
}

// Get returns the value stored under name, or nil.
func (e *Entity) Get(name string) Value { return e.fields[name] }

// Lookup returns the value stored under name and whether it is set.
func (e *Entity) Lookup(name string) (Value, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// Fields returns the names of the stored fields in assignment order.
func (e *Entity) Fields() []string { return slices.Clone(e.order) }

func isNull(v Value) bool {
	if v == nil {
		return true
	}
	e, ok := v.(*Entity)
	return ok && e == nil
}

// Validate checks the entity, then every entity reachable from its fields.
// For each entity, required fields are checked before any stored field is
// typed; a stored field resolves against required and optional fields, then
// extensions, then patterns. Failures below the receiver are wrapped in a
// *PathError. The first failure is returned.
func (e *Entity) Validate() error {
	return e.validate("", map[*Entity]bool{})
}

func (e *Entity) validate(path string, visiting map[*Entity]bool) error {
	if visiting[e] {
		return atPath(path, fmt.Errorf("%w: %s", ErrReferenceCycle, e))
	}
	visiting[e] = true
	defer delete(visiting, e)

	if err := e.checkSelf(); err != nil {
		return atPath(path, err)
	}
	for _, name := range e.order {
		err := walkEntities(joinPath(path, name), e.fields[name], func(p string, child *Entity) error {
			return child.validate(p, visiting)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Entity) checkSelf() error {
	for _, f := range e.typ.required {
		if _, ok := e.fields[f.name]; !ok {
			return &MissingRequiredFieldError{Entity: e.typ.name, Field: f.name}
		}
	}
	for _, name := range e.order {
		if err := e.checkField(name, e.fields[name]); err != nil {
			return err
		}
	}
	if e.typ.check != nil {
		return e.typ.check(e)
	}
	return nil
}

func (e *Entity) checkField(name string, v Value) error {
	if rule, ok := e.typ.fixed[name]; ok {
		return e.conform(name, rule.expr, v)
	}
	if e.typ.extensions && strings.HasPrefix(name, ExtensionPrefix) {
		return nil
	}
	// Patterns are the terminal fallback.
	for _, p := range e.typ.patterns {
		if p.re.MatchString(name) {
			return e.conform(name, p.expr, v)
		}
	}
	return &UnknownFieldError{Entity: e.typ.name, Field: name}
}

func (e *Entity) conform(name string, x Expr, v Value) error {
	ok, err := e.typ.registry.Conforms(x, v)
	if err != nil {
		return fmt.Errorf("field %q in %s: %w", name, e.typ.name, err)
	}
	if !ok {
		return &InvalidFieldTypeError{Entity: e.typ.name, Field: name, Expected: x.String(), Actual: v}
	}
	return nil
}

// ValidateAll is like Validate but reports every failure in the graph,
// keyed by field path. The returned error is a [ValidationErrors].
func (e *Entity) ValidateAll() error {
	errs := ValidationErrors{}
	e.collect("", errs, map[*Entity]bool{})
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (e *Entity) collect(path string, errs ValidationErrors, visiting map[*Entity]bool) {
	self := path
	if self == "" {
		self = e.typ.name
	}
	if visiting[e] {
		errs[self] = fmt.Errorf("%w: %s", ErrReferenceCycle, e)
		return
	}
	visiting[e] = true
	defer delete(visiting, e)

	failed := false
	for _, f := range e.typ.required {
		if _, ok := e.fields[f.name]; !ok {
			errs[joinPath(path, f.name)] = &MissingRequiredFieldError{Entity: e.typ.name, Field: f.name}
			failed = true
		}
	}
	for _, name := range e.order {
		p := joinPath(path, name)
		if err := e.checkField(name, e.fields[name]); err != nil {
			errs[p] = err
			failed = true
			continue
		}
		_ = walkEntities(p, e.fields[name], func(p string, child *Entity) error {
			child.collect(p, errs, visiting)
			return nil
		})
	}
	// Failures in child entities do not suppress this entity's Check.
	if e.typ.check != nil && !failed {
		if err := e.typ.check(e); err != nil {
			errs[self] = err
		}
	}
}

// PlainData validates the entity graph and converts it to nested
// map[string]any, []any, string, int64, float64 and bool values. Nothing is
// returned when validation fails.
func (e *Entity) PlainData() (map[string]any, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e.plain(), nil
}

func (e *Entity) plain() map[string]any {
	out := make(map[string]any, len(e.fields))
	for _, name := range e.order {
		out[name] = plain(e.fields[name])
	}
	return out
}

// walkEntities calls fn for every entity directly reachable from v through
// lists and maps, in list order and sorted key order.
func walkEntities(path string, v Value, fn func(path string, e *Entity) error) error {
	switch v := v.(type) {
	case *Entity:
		if v == nil {
			return nil
		}
		return fn(path, v)
	case List:
		for i, elem := range v {
			if err := walkEntities(path+"["+strconv.Itoa(i)+"]", elem, fn); err != nil {
				return err
			}
		}
	case Map:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			if err := walkEntities(joinPath(path, k), v[k], fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func atPath(path string, err error) error {
	if path == "" {
		return err
	}
	return &PathError{Path: path, Err: err}
}
