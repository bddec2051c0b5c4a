package cheetah

import (
	"strings"
)

const indentUnit = "    "

// Node is one element of a template tree.
type Node interface {
	render(b *strings.Builder, depth int)
}

// Line is literal text. It may contain ${...} placeholders.
type Line string

func (l Line) render(b *strings.Builder, depth int) {
	writeLine(b, depth, string(l))
}

// Set assigns a template variable.
type Set struct {
	Var   string
	Value Expr
}

func (s Set) render(b *strings.Builder, depth int) {
	writeLine(b, depth, "#set $"+s.Var+" = "+s.Value.String())
}

// Branch is one arm of an If.
type Branch struct {
	Cond Cond
	Body []Node
}

// If is an #if/#elif chain with an optional #else.
type If struct {
	Branches []Branch
	Else     []Node
}

// When is a single-armed If.
func When(cond Cond, body ...Node) If {
	return If{Branches: []Branch{{Cond: cond, Body: body}}}
}

func (i If) render(b *strings.Builder, depth int) {
	if len(i.Branches) == 0 {
		renderAll(b, depth, i.Else)

		return
	}

	for n, branch := range i.Branches {
		keyword := "#elif "
		if n == 0 {
			keyword = "#if "
		}

		writeLine(b, depth, keyword+branch.Cond.String()+":")
		renderAll(b, depth+1, branch.Body)
	}

	if len(i.Else) > 0 {
		writeLine(b, depth, "#else")
		renderAll(b, depth+1, i.Else)
	}

	writeLine(b, depth, "#end if")
}

// For iterates a repeat placeholder.
type For struct {
	Var  string
	In   string
	Body []Node
}

func (f For) render(b *strings.Builder, depth int) {
	writeLine(b, depth, "#for $"+f.Var+" in $"+f.In+":")
	renderAll(b, depth+1, f.Body)
	writeLine(b, depth, "#end for")
}

// Render serializes the nodes, one directive or literal per line.
func Render(nodes ...Node) string {
	var b strings.Builder

	renderAll(&b, 0, nodes)

	return b.String()
}

func renderAll(b *strings.Builder, depth int, nodes []Node) {
	for _, node := range nodes {
		node.render(b, depth)
	}
}

func writeLine(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString(text)
	b.WriteByte('\n')
}
