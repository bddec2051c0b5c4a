// Package descriptor renders the Galaxy XML documents: one tool per function,
// the shared macros file and the optional tabular loader tool.
package descriptor

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/devantler-tech/r2g2/pkg/script"
)

// LoadMatrixFile is the file name of the tabular loader tool.
const LoadMatrixFile = "r_load_matrix.xml"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("descriptor").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"xmlattr":     escapeXML,
			"xmltext":     escapeXML,
			"cdata":       escapeCDATA,
			"placeholder": placeholder,
			"macrosFile":  MacrosFile,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// Tool is everything that varies between tool descriptors.
type Tool struct {
	// ID is the sanitized, run-unique tool id. It also names the output file.
	ID string
	// Name is the R function name.
	Name        string
	Description string
	Help        string
	// RName is the R package name, used to import the macros file.
	RName             string
	GalaxyToolVersion string
	// Inputs are the rendered widget fragments in call order.
	Inputs []string
	// Script is the rendered configfile body.
	Script string
}

// Package holds the package-level metadata of the macros file.
type Package struct {
	RName             string
	PackageName       string
	PackageVersion    string
	GalaxyToolVersion string
}

type toolView struct {
	Tool

	ScriptName     string
	IncludeOutputs string
	OutputDataset  string
	OutputScript   string
}

// FileName returns the descriptor file name for the tool.
func (t Tool) FileName() string {
	return t.ID + ".xml"
}

// MacrosFile returns the macros file name of an R package.
func MacrosFile(rName string) string {
	return rName + "_macros.xml"
}

// RenderTool renders one tool descriptor.
func RenderTool(tool Tool) (string, error) {
	return execute("tool.xml.tmpl", toolView{
		Tool:           tool,
		ScriptName:     tool.ID + "_script",
		IncludeOutputs: script.IncludeOutputs,
		OutputDataset:  script.OutputDataset,
		OutputScript:   script.OutputScript,
	})
}

// RenderMacros renders the shared macros file.
func RenderMacros(pkg Package) (string, error) {
	return execute("macros.xml.tmpl", pkg)
}

// RenderLoadMatrix renders the tabular loader tool.
func RenderLoadMatrix(pkg Package) (string, error) {
	return execute("r_load_matrix.xml.tmpl", pkg)
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer

	err := templates.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	return buf.String(), nil
}

func escapeXML(value string) string {
	var b strings.Builder

	_ = xml.EscapeText(&b, []byte(value))

	return b.String()
}

// escapeCDATA splits every "]]>" across two sections so the payload cannot
// terminate the enclosing CDATA early.
func escapeCDATA(value string) string {
	return strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>")
}

func placeholder(name string) string {
	return "${" + name + "}"
}
