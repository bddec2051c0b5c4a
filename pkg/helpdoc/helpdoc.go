// Package helpdoc renders R documentation pages as reStructuredText for the
// <help> block of a tool.
package helpdoc

import (
	"context"
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/devantler-tech/r2g2/pkg/introspect"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNoPages is reported as the fallback reason when a function has no help pages.
var ErrNoPages = errors.New("no help pages")

const (
	titleSection  = "title"
	pageSeparator = "\n\n"
	bodyIndent    = "  "
)

// Options tune the rendering.
type Options struct {
	// Wrap breaks body lines at this many columns. Zero keeps lines as they are.
	Wrap uint
	// Sections restricts output to these section names. Empty keeps all.
	Sections []string
}

// Result is the rendered documentation of one function.
type Result struct {
	Help        string
	Description string
	// Fallback is set when Help is the raw doc string; it explains why.
	Fallback error
}

// Extract renders every help page of function. When no page can be rendered
// it falls back to the function's doc string. It never fails.
func Extract(
	ctx context.Context,
	source introspect.Source,
	function string,
	options Options,
) Result {
	pages, err := source.HelpPages(ctx, function)
	if err == nil && len(pages) == 0 {
		err = ErrNoPages
	}

	if err != nil {
		doc, docErr := source.DocString(ctx, function)
		if docErr != nil {
			doc = ""
		}

		return Result{Help: doc, Fallback: err}
	}

	var (
		rendered    []string
		description string
	)

	for _, page := range pages {
		if text := RenderPage(page, options); text != "" {
			rendered = append(rendered, text)
		}

		if description != "" {
			continue
		}

		if title, ok := page.Section(titleSection); ok {
			description = strings.TrimSpace(title.Content.Flatten())
		}
	}

	return Result{Help: strings.Join(rendered, pageSeparator), Description: description}
}

// RenderPage renders the selected sections of one page, each as a titled
// literal block.
func RenderPage(page introspect.HelpPage, options Options) string {
	var b strings.Builder

	titler := cases.Title(language.Und)

	for _, section := range page.Sections {
		if len(options.Sections) > 0 && !slices.Contains(options.Sections, section.Name) {
			continue
		}

		body := section.Content.Flatten()
		if options.Wrap > 0 {
			body = wordwrap.WrapString(body, options.Wrap)
		}

		b.WriteString(titler.String(section.Name))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(section.Name)))
		b.WriteString("\n\n::\n")
		b.WriteString(bodyIndent + "\n" + bodyIndent)
		b.WriteString(strings.ReplaceAll(body, "\n", "\n"+bodyIndent))
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String())
}
