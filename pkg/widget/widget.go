package widget

import (
	"encoding/xml"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/devantler-tech/r2g2/pkg/classify"
	"github.com/devantler-tech/r2g2/pkg/naming"
)

// Names shared with the script synthesizer.
const (
	// EllipsisRepeat is the repeat holding variadic arguments.
	EllipsisRepeat = "___ellipsis___"
	// EllipsisArgument is the per-repetition value prefix.
	EllipsisArgument = "argument"
	// EllipsisArgumentName is the per-repetition argument name field.
	EllipsisArgumentName = EllipsisArgument + "_name"
	// ToggleTrue is the value of the optional toggle when a value is provided.
	ToggleTrue = "True"
)

const (
	indent          = "    "
	doNothing       = " Do nothing here "
	multipleSuffix  = " (multiple values)"
	rdsFormat       = "rds"
	ellipsisTitle   = "Additional " + EllipsisArgument
	ellipsisLabel   = "Argument value"
	argumentNameTag = "Name for argument"
)

// TypeName is the name of the conditional wrapping a parameter's inputs.
func TypeName(name string) string {
	return name + "_type"
}

// SelectorName is the name of a conditional's selector param.
func SelectorName(name string) string {
	return name + "_type_selector"
}

// Build returns the element tree for one parameter.
func Build(param classify.Parameter) any {
	name := naming.Sanitize(param.Name)

	switch param.Category {
	case classify.CategoryEllipsis:
		return ellipsis()
	case classify.CategoryUndetermined:
		return optional(name, undetermined(name, param))
	case classify.CategoryDataset:
		return optional(name, typed(classify.SubcaseDataset, name, param))
	case classify.CategoryInteger:
		return optional(name, typed(classify.SubcaseInteger, name, param))
	case classify.CategoryFloat:
		return optional(name, typed(classify.SubcaseFloat, name, param))
	case classify.CategoryBoolean:
		return optional(name, typed(classify.SubcaseBoolean, name, param))
	default:
		return optional(name, typed(classify.SubcaseText, name, param))
	}
}

// encoding/xml keeps a closing tag on the line of a trailing comment.
var commentThenClose = regexp.MustCompile(`(?m)^( *)(` + indent + `<!--.*-->)(</when>)$`)

// Synthesize renders the widget of one parameter as indented XML.
func Synthesize(param classify.Parameter) (string, error) {
	out, err := xml.MarshalIndent(Build(param), "", indent)
	if err != nil {
		return "", fmt.Errorf("render widget for %s: %w", param.Name, err)
	}

	return commentThenClose.ReplaceAllString(string(out), "${1}${2}\n${1}${3}"), nil
}

// SynthesizeAll renders widgets in parameter order.
func SynthesizeAll(params []classify.Parameter) ([]string, error) {
	fragments := make([]string, 0, len(params))

	for _, param := range params {
		fragment, err := Synthesize(param)
		if err != nil {
			return nil, err
		}

		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

func optional(name string, input any) Conditional {
	return Conditional{
		Name: TypeName(name),
		Selector: Param{
			Name:       SelectorName(name),
			Type:       "boolean",
			TrueValue:  ToggleTrue,
			FalseValue: "False",
			Checked:    ToggleTrue,
			Label:      name + ": Provide value",
		},
		Whens: []When{
			{Value: ToggleTrue, Input: input},
			{Value: "False", Comment: doNothing},
		},
	}
}

func undetermined(name string, param classify.Parameter) Conditional {
	options := make([]Option, 0, len(classify.Subcases()))
	whens := make([]When, 0, len(classify.Subcases()))

	for _, subcase := range classify.Subcases() {
		option := Option{Value: string(subcase), Text: subcase.Label()}
		if subcase == param.Preselected {
			option.Selected = "true"
		}

		options = append(options, option)

		when := When{Value: string(subcase)}
		if subcase.HasWidget() {
			when.Input = typed(subcase, name, param)
		} else {
			when.Comment = doNothing
		}

		whens = append(whens, when)
	}

	return Conditional{
		Name: TypeName(name),
		Selector: Param{
			Name:    SelectorName(name),
			Type:    "select",
			Label:   name + ": type of input",
			Options: options,
		},
		Whens: whens,
	}
}

func ellipsis() Repeat {
	empty := ""

	value := classify.Parameter{Name: ellipsisLabel}

	return Repeat{
		Name:  EllipsisRepeat,
		Title: ellipsisTitle,
		Children: []any{
			Param{
				Name:  EllipsisArgumentName,
				Type:  "text",
				Value: &empty,
				Label: argumentNameTag,
				Help:  &empty,
			},
			undetermined(EllipsisArgument, value),
		},
	}
}

func typed(subcase classify.Subcase, name string, param classify.Parameter) Param {
	label := param.Name
	if param.Multiple {
		label += multipleSuffix
	}

	help := param.Help

	input := Param{Name: name, Label: label, Help: &help}

	switch subcase {
	case classify.SubcaseDataset:
		input.Type = "data"
		input.Format = rdsFormat
	case classify.SubcaseInteger:
		input.Type = "integer"
		setNumeric(&input, param.DefaultText, isInteger)
	case classify.SubcaseFloat:
		input.Type = "float"
		setNumeric(&input, param.DefaultText, isFloat)
	case classify.SubcaseBoolean:
		input.Type = "boolean"
		input.TrueValue = "TRUE"
		input.FalseValue = "FALSE"
		input.Checked = "False"

		if param.DefaultText == ToggleTrue {
			input.Checked = ToggleTrue
		}
	case classify.SubcaseText, classify.SubcaseSkip, classify.SubcaseNull, classify.SubcaseNA, classify.SubcaseNone:
		input.Type = "text"
		value := param.DefaultText
		input.Value = &value
	}

	return input
}

// setNumeric prefills a numeric param, or marks it optional when the default
// is not a literal Galaxy can parse.
func setNumeric(input *Param, text string, valid func(string) bool) {
	if valid(text) {
		input.Value = &text

		return
	}

	input.Optional = "true"
}

func isInteger(text string) bool {
	_, err := strconv.ParseInt(text, 10, 64)

	return err == nil
}

func isFloat(text string) bool {
	value, err := strconv.ParseFloat(text, 64)

	return err == nil && !math.IsInf(value, 0) && !math.IsNaN(value)
}
