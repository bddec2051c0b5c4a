package generator

import (
	"github.com/devantler-tech/r2g2/pkg/classify"
	"github.com/devantler-tech/r2g2/pkg/naming"
	"github.com/devantler-tech/r2g2/pkg/script"
	"github.com/devantler-tech/r2g2/pkg/widget"
)

// reservedInputs are names the descriptor or the script template already use.
var reservedInputs = map[string]struct{}{
	script.IncludeOutputs:  {},
	script.OutputDataset:   {},
	script.OutputScript:    {},
	script.IncludeFilesVar: {},
	script.CommaVar:        {},
	script.ArgPrefixVar:    {},
	widget.EllipsisRepeat:  {},
}

// nameCollisions returns the parameters whose input name clashes with a
// reserved name or with an earlier parameter after sanitization. Generation
// still proceeds with the clashing names.
func nameCollisions(params []classify.Parameter) []string {
	var collisions []string

	seen := make(map[string]struct{}, len(params))

	for _, param := range params {
		if param.Category == classify.CategoryEllipsis {
			continue
		}

		name := naming.Sanitize(param.Name)

		_, reserved := reservedInputs[name]
		_, reservedWrapper := reservedInputs[widget.TypeName(name)]
		_, duplicate := seen[name]

		if reserved || reservedWrapper || duplicate {
			collisions = append(collisions, param.Name)
		}

		seen[name] = struct{}{}
	}

	return collisions
}
