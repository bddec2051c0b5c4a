// Package classify decides which input widget a formal argument gets.
//
// Every argument with an inspectable default becomes an undetermined
// conditional whose preselected subcase follows the default's scalar kind.
// Arguments without a default fall back to optional free text, and the
// variadic "..." always becomes a repeat.
package classify

import (
	"strings"

	"github.com/devantler-tech/r2g2/pkg/introspect"
)

// Category is the widget family of a parameter.
type Category string

const (
	// CategoryDataset is a direct RDS dataset input.
	CategoryDataset Category = "dataset"
	// CategoryText is a direct free-text input.
	CategoryText Category = "text"
	// CategoryInteger is a direct integer input.
	CategoryInteger Category = "integer"
	// CategoryFloat is a direct floating point input.
	CategoryFloat Category = "float"
	// CategoryBoolean is a direct boolean toggle.
	CategoryBoolean Category = "boolean"
	// CategoryUndetermined defers the type choice to a runtime conditional.
	CategoryUndetermined Category = "undetermined"
	// CategoryEllipsis is the variadic tail.
	CategoryEllipsis Category = "ellipsis"
)

// Subcase is one option of the runtime type conditional. The values are the
// option values written to the tool XML.
type Subcase string

const (
	// SubcaseNone marks a classification without a preselected option.
	SubcaseNone    Subcase = ""
	SubcaseDataset Subcase = "dataset"
	SubcaseText    Subcase = "text"
	SubcaseInteger Subcase = "integer"
	SubcaseFloat   Subcase = "float"
	SubcaseBoolean Subcase = "boolean"
	SubcaseSkip    Subcase = "skip"
	SubcaseNull    Subcase = "NULL"
	SubcaseNA      Subcase = "NA"
)

// Subcases lists the runtime conditional options in display order.
func Subcases() []Subcase {
	return []Subcase{
		SubcaseDataset,
		SubcaseText,
		SubcaseInteger,
		SubcaseFloat,
		SubcaseBoolean,
		SubcaseSkip,
		SubcaseNull,
		SubcaseNA,
	}
}

// Label returns the option text shown to the user.
func (s Subcase) Label() string {
	switch s {
	case SubcaseDataset:
		return "Dataset"
	case SubcaseText:
		return "Text"
	case SubcaseInteger:
		return "Integer"
	case SubcaseFloat:
		return "Float"
	case SubcaseBoolean:
		return "Boolean"
	case SubcaseSkip:
		return "Skip"
	case SubcaseNull, SubcaseNA:
		return string(s)
	default:
		return ""
	}
}

// HasWidget reports whether selecting the subcase shows a value input.
func (s Subcase) HasWidget() bool {
	switch s {
	case SubcaseDataset, SubcaseText, SubcaseInteger, SubcaseFloat, SubcaseBoolean:
		return true
	default:
		return false
	}
}

// Tokens R prints for the first element of a NULL or missing logical default.
const (
	nullToken = "NULL"
	naToken   = "NA"
)

// Parameter is a classified formal argument.
type Parameter struct {
	// Name is the R formal name, unsanitized.
	Name        string
	Category    Category
	Preselected Subcase
	// Multiple is set when the default has more than one element.
	Multiple bool
	// DefaultText is the value prefilled into the typed widget.
	DefaultText string
	// Help is the deparsed default shown under the widget.
	Help string
}

// Classify maps one formal argument to its widget family. It never fails:
// anything it cannot inspect becomes optional text.
func Classify(formal introspect.Formal) Parameter {
	param := Parameter{Name: formal.Name, Category: CategoryText}

	if formal.Default != nil {
		param.Help = strings.TrimSpace(formal.Default.Repr)
	}

	if formal.Name == introspect.EllipsisName {
		param.Category = CategoryEllipsis

		return param
	}

	if !formal.Introspectable() {
		return param
	}

	value := formal.Default
	param.Category = CategoryUndetermined
	param.Multiple = value.Len() > 1

	switch value.Kind {
	case introspect.KindInteger:
		param.Preselected = SubcaseInteger
		param.DefaultText = value.First()
	case introspect.KindLogical:
		first := value.First()

		switch first {
		case nullToken:
			param.Preselected = SubcaseNull
			param.DefaultText = first
		case naToken:
			param.Preselected = SubcaseNA
			param.DefaultText = first
		default:
			param.Preselected = SubcaseBoolean
			if len(value.Values) > 0 {
				param.DefaultText = galaxyBool(strings.EqualFold(strings.TrimSpace(first), "true"))
			}
		}
	case introspect.KindDouble:
		param.Preselected = SubcaseFloat
		param.DefaultText = value.First()
	case introspect.KindCharacter:
		param.Preselected = SubcaseText
		param.DefaultText = value.First()
	default:
		param.Preselected = SubcaseDataset
	}

	return param
}

// ClassifyAll classifies formals in call order.
func ClassifyAll(formals []introspect.Formal) []Parameter {
	params := make([]Parameter, 0, len(formals))
	for _, formal := range formals {
		params = append(params, Classify(formal))
	}

	return params
}

func galaxyBool(value bool) string {
	if value {
		return "True"
	}

	return "False"
}
