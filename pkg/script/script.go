// Package script builds the Cheetah configfile that calls an R function with
// the arguments the user enabled in the tool form.
//
// Arguments are joined through a runtime flag, $___USE_COMMA___, that is set
// only after an argument has actually been written. Any subset of enabled
// toggles therefore yields a well-formed call.
package script

import (
	"github.com/devantler-tech/r2g2/pkg/cheetah"
	"github.com/devantler-tech/r2g2/pkg/classify"
	"github.com/devantler-tech/r2g2/pkg/naming"
	"github.com/devantler-tech/r2g2/pkg/widget"
)

// Template variables and Galaxy names the script relies on.
const (
	CommaVar        = "___USE_COMMA___"
	ArgPrefixVar    = "___ARG_PREFIX___"
	IncludeFilesVar = "include_files"
	LoopVar         = "eli"

	// IncludeOutputs is the multi-select choosing which outputs to create.
	IncludeOutputs = "include_outputs"
	// OutputDataset is the RDS result output.
	OutputDataset = "output_r_dataset"
	// OutputScript is the copy of the generated R script.
	OutputScript = "output_r_script"
	// ResultVar holds the return value of the call.
	ResultVar = "rval"
)

const comma = ","

// Build returns the template tree invoking function from package pkg.
func Build(pkg, function string, params []classify.Parameter) []cheetah.Node {
	nodes := []cheetah.Node{
		cheetah.Set{Var: IncludeFilesVar, Value: cheetah.Split{Path: IncludeOutputs, Sep: comma}},
		cheetah.Line("library(" + pkg + ")"),
		cheetah.Set{Var: CommaVar, Value: cheetah.Str("")},
		cheetah.Line(ResultVar + " <- " + naming.QuoteR(function) + "("),
	}

	for _, param := range params {
		nodes = append(nodes, argument(param))
	}

	return append(nodes,
		cheetah.Line(")"),
		cheetah.When(
			cheetah.In{Needle: OutputDataset, Var: IncludeFilesVar},
			cheetah.Line(`saveRDS(`+ResultVar+`, file = "${`+OutputDataset+`}", ascii = FALSE, version = 2, compress = TRUE )`),
		),
	)
}

// Synthesize renders the configfile body.
func Synthesize(pkg, function string, params []classify.Parameter) string {
	return cheetah.Render(Build(pkg, function, params)...)
}

func argument(param classify.Parameter) cheetah.Node {
	if param.Category == classify.CategoryEllipsis {
		return ellipsis()
	}

	name := naming.Sanitize(param.Name)
	outer := widget.TypeName(name)
	prefix := naming.QuoteR(param.Name) + " = "

	var body []cheetah.Node

	switch param.Category {
	case classify.CategoryUndetermined:
		path := outer + "." + widget.TypeName(name)
		body = []cheetah.Node{
			subcaseChain(path+"."+widget.SelectorName(name), path+"."+name, prefix),
		}
	case classify.CategoryDataset:
		body = emit(prefix, valueFor(classify.SubcaseDataset, outer+"."+name))
	case classify.CategoryInteger:
		body = emit(prefix, valueFor(classify.SubcaseInteger, outer+"."+name))
	case classify.CategoryFloat:
		body = emit(prefix, valueFor(classify.SubcaseFloat, outer+"."+name))
	case classify.CategoryBoolean:
		body = emit(prefix, valueFor(classify.SubcaseBoolean, outer+"."+name))
	default:
		body = emit(prefix, valueFor(classify.SubcaseText, outer+"."+name))
	}

	return cheetah.When(
		cheetah.Equals{Left: cheetah.Ref(outer + "." + widget.SelectorName(name)), Right: widget.ToggleTrue},
		body...,
	)
}

// ellipsis passes every repetition on, named when the user gave a name and
// positionally otherwise.
func ellipsis() cheetah.Node {
	argName := LoopVar + "." + widget.EllipsisArgumentName
	path := LoopVar + "." + widget.TypeName(widget.EllipsisArgument)

	return cheetah.For{
		Var: LoopVar,
		In:  widget.EllipsisRepeat,
		Body: []cheetah.Node{
			cheetah.Set{Var: ArgPrefixVar, Value: cheetah.Str("")},
			cheetah.When(
				cheetah.Truthy{Expr: cheetah.Strip(argName)},
				cheetah.Set{
					Var:   ArgPrefixVar,
					Value: cheetah.Concat{cheetah.Str("`"), cheetah.Strip(argName), cheetah.Str("` = ")},
				},
			),
			subcaseChain(
				path+"."+widget.SelectorName(widget.EllipsisArgument),
				path+"."+widget.EllipsisArgument,
				"${"+ArgPrefixVar+"}",
			),
		},
	}
}

// subcaseChain dispatches on the runtime type selector. Skip has no branch.
func subcaseChain(selector, value, prefix string) cheetah.Node {
	var chain cheetah.If

	for _, subcase := range classify.Subcases() {
		if subcase == classify.SubcaseSkip {
			continue
		}

		chain.Branches = append(chain.Branches, cheetah.Branch{
			Cond: cheetah.Equals{Left: cheetah.Ref(selector), Right: cheetah.Str(subcase)},
			Body: emit(prefix, valueFor(subcase, value)),
		})
	}

	return chain
}

func valueFor(subcase classify.Subcase, path string) string {
	placeholder := "${" + path + "}"

	switch subcase {
	case classify.SubcaseDataset:
		return `readRDS("` + placeholder + `")`
	case classify.SubcaseText:
		return `"` + placeholder + `"`
	case classify.SubcaseNull, classify.SubcaseNA:
		return string(subcase)
	default:
		return placeholder
	}
}

// emit writes one argument and arms the separator for the next one.
func emit(prefix, value string) []cheetah.Node {
	return []cheetah.Node{
		cheetah.Line("${" + CommaVar + "}" + prefix + value),
		cheetah.Set{Var: CommaVar, Value: cheetah.Str(comma)},
	}
}
