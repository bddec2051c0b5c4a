package introspect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// EllipsisName is the formal argument name R uses for variadic arguments.
const EllipsisName = "..."

var (
	// ErrUnknownFunction is returned when a name is not exported by the package.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrNotScalar is returned when a default value element is an array or object.
	ErrNotScalar = errors.New("default value element is not a scalar")
)

// ScalarKind is the elementary type tag R reports for a default value.
type ScalarKind string

const (
	// KindInteger is an integer vector (INTSXP).
	KindInteger ScalarKind = "integer"
	// KindLogical is a logical vector (LGLSXP).
	KindLogical ScalarKind = "logical"
	// KindDouble is a floating point vector (REALSXP).
	KindDouble ScalarKind = "double"
	// KindCharacter is a character vector (STRSXP).
	KindCharacter ScalarKind = "character"
	// KindOther covers calls, symbols, closures and anything else.
	KindOther ScalarKind = "other"
)

// DefaultValue describes the default expression of a formal argument.
type DefaultValue struct {
	// Kind is the scalar kind of the unevaluated default.
	Kind ScalarKind `json:"kind"`
	// Values holds the string form of each element for atomic kinds.
	Values []string `json:"values,omitempty"`
	// Length overrides len(Values), e.g. for language objects.
	Length *int `json:"length,omitempty"`
	// Repr is the deparsed default, used as widget help text.
	Repr string `json:"repr,omitempty"`
}

// Len returns the element count of the default value.
func (d *DefaultValue) Len() int {
	if d == nil {
		return 0
	}

	if d.Length != nil {
		return *d.Length
	}

	return len(d.Values)
}

// First returns the string form of the first element, or "" when empty.
func (d *DefaultValue) First() string {
	if d == nil || len(d.Values) == 0 {
		return ""
	}

	return d.Values[0]
}

// UnmarshalJSON accepts unquoted numbers, booleans and nulls as value
// elements, the way hand-written YAML manifests spell them. Booleans become
// TRUE or FALSE and null becomes NA.
func (d *DefaultValue) UnmarshalJSON(data []byte) error {
	type plain DefaultValue

	var raw struct {
		plain

		Values []json.RawMessage `json:"values,omitempty"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decode default value: %w", err)
	}

	*d = DefaultValue(raw.plain)
	d.Values = nil

	for _, element := range raw.Values {
		text, err := scalarText(element)
		if err != nil {
			return err
		}

		d.Values = append(d.Values, text)
	}

	return nil
}

func scalarText(element json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(element)

	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return "NA", nil
	case bytes.Equal(trimmed, []byte("true")):
		return "TRUE", nil
	case bytes.Equal(trimmed, []byte("false")):
		return "FALSE", nil
	case trimmed[0] == '"':
		var text string

		err := json.Unmarshal(trimmed, &text)
		if err != nil {
			return "", fmt.Errorf("decode default value element: %w", err)
		}

		return text, nil
	case trimmed[0] == '[', trimmed[0] == '{':
		return "", fmt.Errorf("%w: %s", ErrNotScalar, trimmed)
	default:
		return string(trimmed), nil
	}
}

// Formal is one argument position of a function signature.
type Formal struct {
	Name string `json:"name"`
	// Default is nil when the argument has no default.
	Default *DefaultValue `json:"default,omitempty"`
	// Error records why the default could not be inspected.
	Error string `json:"error,omitempty"`
}

// Introspectable reports whether the default value can be classified.
func (f Formal) Introspectable() bool {
	return f.Default != nil && f.Error == ""
}

// Section is one named part of a documentation page.
type Section struct {
	Name    string   `json:"name"`
	Content TextNode `json:"content"`
}

// HelpPage is a parsed documentation page.
type HelpPage struct {
	Sections []Section `json:"sections"`
}

// Section returns the first section with the given name.
func (p HelpPage) Section(name string) (Section, bool) {
	for _, section := range p.Sections {
		if section.Name == name {
			return section, true
		}
	}

	return Section{}, false
}

// Source is the query contract the generator consumes.
type Source interface {
	// PackageVersion returns the installed version of the package.
	PackageVersion(ctx context.Context) (string, error)
	// ListExports returns the exported names in generation order.
	ListExports(ctx context.Context) ([]string, error)
	// Formals returns the ordered formal arguments of a function.
	Formals(ctx context.Context, function string) ([]Formal, error)
	// HelpPages returns the documentation pages for a function.
	HelpPages(ctx context.Context, function string) ([]HelpPage, error)
	// DocString returns the raw documentation string used as fallback help.
	DocString(ctx context.Context, function string) (string, error)
}
