package genspec

import (
	"fmt"
	"regexp"
	"strings"
)

// Expr is a parsed type expression. It is one of [Simple], [Sequence],
// [Mapping] or [Union].
type Expr interface {
	// String returns the canonical, whitespace-free form of the expression.
	String() string
	typeExpr()
}

// Simple names a primitive or a registered entity type, e.g. "string" or "Info".
type Simple struct {
	Name string
}

// Sequence is an ordered list whose elements all satisfy Elem, e.g. "[Server]".
type Sequence struct {
	Elem Expr
}

// Mapping is a keyed collection, e.g. "Map[string,ServerVariable]".
type Mapping struct {
	Key  Expr
	Elem Expr
}

// Union accepts a value satisfying Left or Right, e.g. "Schema|Reference".
type Union struct {
	Left  Expr
	Right Expr
}

func (Simple) typeExpr()   {}
func (Sequence) typeExpr() {}
func (Mapping) typeExpr()  {}
func (Union) typeExpr()    {}

func (x Simple) String() string   { return x.Name }
func (x Sequence) String() string { return "[" + x.Elem.String() + "]" }
func (x Mapping) String() string  { return "Map[" + x.Key.String() + "," + x.Elem.String() + "]" }
func (x Union) String() string    { return x.Left.String() + "|" + x.Right.String() }

var (
	simpleTypeRegexp = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]+)$`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

const mapPrefix = "Map["

// ParseType parses a type expression. Forms are tried in order: simple name,
// sequence "[T]", mapping "Map[K,T]", union "A|B". Whitespace is ignored.
// Brackets are matched by depth, so nested expressions split at the top level.
func ParseType(s string) (Expr, error) {
	src := whitespaceRegexp.ReplaceAllString(s, "")
	x, err := parseType(src)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot process type definition %q", ErrMalformedType, s)
	}
	return x, nil
}

// MustParseType is like [ParseType] but panics on error.
func MustParseType(s string) Expr {
	x, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return x
}

func parseType(s string) (Expr, error) {
	if simpleTypeRegexp.MatchString(s) {
		return Simple{Name: s}, nil
	}

	if strings.HasPrefix(s, "[") && closingBracket(s, 0) == len(s)-1 {
		elem, err := parseType(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return Sequence{Elem: elem}, nil
	}

	if strings.HasPrefix(s, mapPrefix) && closingBracket(s, len(mapPrefix)-1) == len(s)-1 {
		inner := s[len(mapPrefix) : len(s)-1]
		i := topLevelIndex(inner, ',')
		if i > 0 && i < len(inner)-1 {
			key, err := parseType(inner[:i])
			if err != nil {
				return nil, err
			}
			elem, err := parseType(inner[i+1:])
			if err != nil {
				return nil, err
			}
			return Mapping{Key: key, Elem: elem}, nil
		}
	}

	if i := topLevelIndex(s, '|'); i > 0 && i < len(s)-1 {
		left, err := parseType(s[:i])
		if err != nil {
			return nil, err
		}
		right, err := parseType(s[i+1:])
		if err != nil {
			return nil, err
		}
		return Union{Left: left, Right: right}, nil
	}

	return nil, ErrMalformedType
}

// closingBracket returns the index of the ']' matching the '[' at open, or -1.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// topLevelIndex returns the index of the first sep outside any brackets, or -1.
func topLevelIndex(s string, sep byte) int {
	depth := 0
	for i := range len(s) {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// typeNames appends every simple name referenced by x.
func typeNames(x Expr, names []string) []string {
	switch x := x.(type) {
	case Simple:
		return append(names, x.Name)
	case Sequence:
		return typeNames(x.Elem, names)
	case Mapping:
		return typeNames(x.Elem, typeNames(x.Key, names))
	case Union:
		return typeNames(x.Right, typeNames(x.Left, names))
	}
	return names
}
