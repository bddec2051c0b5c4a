package cheetah

import (
	"strings"
)

// Expr is a Cheetah expression.
type Expr interface {
	String() string
}

// Str is a double-quoted string literal.
type Str string

func (s Str) String() string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)

	return `"` + replacer.Replace(string(s)) + `"`
}

// Ref stringifies a placeholder path, e.g. str( $x_type.x_type_selector ).
type Ref string

func (r Ref) String() string {
	return "str( $" + string(r) + " )"
}

// Strip is Ref with surrounding whitespace removed.
type Strip string

func (s Strip) String() string {
	return Ref(s).String() + ".strip()"
}

// Split splits a stringified placeholder on Sep.
type Split struct {
	Path string
	Sep  Str
}

func (s Split) String() string {
	return Ref(s.Path).String() + ".split( " + s.Sep.String() + " )"
}

// Concat joins string expressions with +.
type Concat []Expr

func (c Concat) String() string {
	parts := make([]string, 0, len(c))
	for _, expr := range c {
		parts = append(parts, expr.String())
	}

	return strings.Join(parts, " + ")
}

// Cond is the test of an #if or #elif.
type Cond interface {
	String() string
}

// Equals compares an expression with a literal.
type Equals struct {
	Left  Expr
	Right Str
}

func (e Equals) String() string {
	return e.Left.String() + " == " + e.Right.String()
}

// NotEquals is the negation of Equals.
type NotEquals struct {
	Left  Expr
	Right Str
}

func (e NotEquals) String() string {
	return e.Left.String() + " != " + e.Right.String()
}

// Truthy holds when the expression is a non-empty string.
type Truthy struct {
	Expr Expr
}

func (t Truthy) String() string {
	return t.Expr.String()
}

// In holds when Needle is an element of the list variable Var.
type In struct {
	Needle Str
	Var    string
}

func (i In) String() string {
	return i.Needle.String() + " in $" + i.Var
}
