// Package cheetahtest expands cheetah trees the way Galaxy would, for tests.
//
// Only the node, expression and condition kinds defined by package cheetah
// are understood. Placeholders are resolved from an Env.
package cheetahtest

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/devantler-tech/r2g2/pkg/cheetah"
)

// ErrUnresolved is returned when a placeholder has no value.
var ErrUnresolved = errors.New("unresolved placeholder")

// ErrUnsupported is returned for values or nodes the evaluator cannot handle.
var ErrUnsupported = errors.New("unsupported template construct")

// Env maps placeholder paths such as "x_type.x_type_selector" to values.
// A value is a string, or a []Env for a repeat iterated by #for.
type Env map[string]any

var placeholderPattern = regexp.MustCompile(`\$\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}`)

type evaluator struct {
	env    Env
	vars   map[string]any
	scopes map[string]Env
	out    []string
}

// Evaluate expands the nodes and returns the emitted lines joined by newlines.
func Evaluate(env Env, nodes ...cheetah.Node) (string, error) {
	e := &evaluator{
		env:    env,
		vars:   map[string]any{},
		scopes: map[string]Env{},
	}

	err := e.nodes(nodes)
	if err != nil {
		return "", err
	}

	return strings.Join(e.out, "\n"), nil
}

func (e *evaluator) nodes(nodes []cheetah.Node) error {
	for _, node := range nodes {
		err := e.node(node)
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *evaluator) node(node cheetah.Node) error {
	switch n := node.(type) {
	case cheetah.Line:
		line, err := e.interpolate(string(n))
		if err != nil {
			return err
		}

		e.out = append(e.out, line)
	case cheetah.Set:
		value, err := e.value(n.Value)
		if err != nil {
			return err
		}

		e.vars[n.Var] = value
	case cheetah.If:
		return e.ifNode(n)
	case cheetah.For:
		return e.forNode(n)
	default:
		return fmt.Errorf("%w: node %T", ErrUnsupported, node)
	}

	return nil
}

func (e *evaluator) ifNode(n cheetah.If) error {
	for _, branch := range n.Branches {
		ok, err := e.cond(branch.Cond)
		if err != nil {
			return err
		}

		if ok {
			return e.nodes(branch.Body)
		}
	}

	return e.nodes(n.Else)
}

func (e *evaluator) forNode(n cheetah.For) error {
	raw, err := e.resolve(n.In)
	if err != nil {
		return err
	}

	entries, ok := raw.([]Env)
	if !ok {
		return fmt.Errorf("%w: $%s is %T, not a repeat", ErrUnsupported, n.In, raw)
	}

	outer, shadowed := e.scopes[n.Var]

	for _, entry := range entries {
		e.scopes[n.Var] = entry

		err = e.nodes(n.Body)
		if err != nil {
			return err
		}
	}

	if shadowed {
		e.scopes[n.Var] = outer
	} else {
		delete(e.scopes, n.Var)
	}

	return nil
}

func (e *evaluator) cond(cond cheetah.Cond) (bool, error) {
	switch c := cond.(type) {
	case cheetah.Equals:
		left, err := e.str(c.Left)

		return left == string(c.Right), err
	case cheetah.NotEquals:
		left, err := e.str(c.Left)

		return left != string(c.Right), err
	case cheetah.Truthy:
		value, err := e.str(c.Expr)

		return value != "", err
	case cheetah.In:
		raw, err := e.resolve(c.Var)
		if err != nil {
			return false, err
		}

		list, ok := raw.([]string)
		if !ok {
			return false, fmt.Errorf("%w: $%s is %T, not a list", ErrUnsupported, c.Var, raw)
		}

		return slices.Contains(list, string(c.Needle)), nil
	default:
		return false, fmt.Errorf("%w: condition %T", ErrUnsupported, cond)
	}
}

func (e *evaluator) value(expr cheetah.Expr) (any, error) {
	split, ok := expr.(cheetah.Split)
	if !ok {
		return e.str(expr)
	}

	source, err := e.str(cheetah.Ref(split.Path))
	if err != nil {
		return nil, err
	}

	return strings.Split(source, string(split.Sep)), nil
}

func (e *evaluator) str(expr cheetah.Expr) (string, error) {
	switch x := expr.(type) {
	case cheetah.Str:
		return string(x), nil
	case cheetah.Ref:
		return e.lookupString(string(x))
	case cheetah.Strip:
		value, err := e.lookupString(string(x))

		return strings.TrimSpace(value), err
	case cheetah.Concat:
		var b strings.Builder

		for _, part := range x {
			value, err := e.str(part)
			if err != nil {
				return "", err
			}

			b.WriteString(value)
		}

		return b.String(), nil
	default:
		return "", fmt.Errorf("%w: expression %T", ErrUnsupported, expr)
	}
}

func (e *evaluator) interpolate(line string) (string, error) {
	var firstErr error

	result := placeholderPattern.ReplaceAllStringFunc(line, func(match string) string {
		path := placeholderPattern.FindStringSubmatch(match)[1]

		value, err := e.lookupString(path)
		if err != nil && firstErr == nil {
			firstErr = err
		}

		return value
	})

	return result, firstErr
}

func (e *evaluator) lookupString(path string) (string, error) {
	raw, err := e.resolve(path)
	if err != nil {
		return "", err
	}

	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: $%s is %T, not a string", ErrUnsupported, path, raw)
	}

	return value, nil
}

func (e *evaluator) resolve(path string) (any, error) {
	head, rest, nested := strings.Cut(path, ".")

	if entry, ok := e.scopes[head]; ok && nested {
		if value, found := entry[rest]; found {
			return value, nil
		}

		return nil, fmt.Errorf("%w: $%s", ErrUnresolved, path)
	}

	if value, ok := e.vars[path]; ok {
		return value, nil
	}

	if value, ok := e.env[path]; ok {
		return value, nil
	}

	return nil, fmt.Errorf("%w: $%s", ErrUnresolved, path)
}
