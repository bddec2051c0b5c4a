// Package cheetah builds Galaxy configfile templates as a typed tree.
//
// Galaxy expands Cheetah directives (#set, #if, #for) when a job runs. Building
// the template from nodes instead of nested string substitution keeps every
// #if paired with its #end if and lets tests evaluate the tree directly.
//
// Key functionality:
//   - Line, Set, If, For: the node kinds
//   - Str, Ref, Strip, Split, Concat: expressions
//   - Equals, NotEquals, Truthy, In: conditions
//   - Render: serializes a tree once
package cheetah
