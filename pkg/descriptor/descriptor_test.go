package descriptor_test

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/devantler-tech/r2g2/pkg/descriptor"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func requireWellFormed(t *testing.T, document string) {
	t.Helper()

	decoder := xml.NewDecoder(strings.NewReader(document))

	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return
		}

		require.NoError(t, err, document)
	}
}

func sampleTool() descriptor.Tool {
	return descriptor.Tool{
		ID:                "demo_f",
		Name:              "f",
		Description:       "Fit a thing",
		Help:              "Title\n-----\n\n::\n  \n  Fit a thing\n",
		RName:             "demo",
		GalaxyToolVersion: "0.0.1",
		Inputs: []string{
			"<conditional name=\"x_type\">\n    <when value=\"True\"></when>\n</conditional>",
		},
		Script: "library(demo)\nrval <- f(\n)\n",
	}
}

func TestRenderTool(t *testing.T) {
	t.Parallel()

	document, err := descriptor.RenderTool(sampleTool())
	require.NoError(t, err)
	requireWellFormed(t, document)

	assert.True(t, strings.HasPrefix(document,
		`<tool id="demo_f" name="f" version="@VERSION@-0.0.1">`))
	assert.Contains(t, document, "<import>demo_macros.xml</import>")
	assert.Contains(t, document, `<configfile name="demo_f_script"><![CDATA[#!/usr/bin/env RScript`+"\nlibrary(demo)\n")
	assert.Contains(t, document, `cp '${demo_f_script}' '${output_r_script}' &&`)
	assert.Contains(t, document, `Rscript '${demo_f_script}'`)
	assert.Contains(t, document, `#if "output_r_script" in str( $include_outputs ).split( "," ):`)
	assert.Contains(t, document, "    <inputs>\n        <conditional name=\"x_type\">\n"+
		"            <when value=\"True\"></when>\n        </conditional>\n"+
		"        <param name=\"include_outputs\"")
	assert.Contains(t, document, "===========================\n\nTitle\n-----\n\n::\n  \n  Fit a thing\n    ]]></help>")

	snaps.MatchSnapshot(t, document)
}

func TestRenderTool_Escaping(t *testing.T) {
	t.Parallel()

	tool := sampleTool()
	tool.Name = `<-"op"`
	tool.Description = "ends ]]> early"
	tool.Help = "a ]]> b"
	tool.Script = "x[[\"a\"]]>1\n"

	document, err := descriptor.RenderTool(tool)
	require.NoError(t, err)
	requireWellFormed(t, document)

	assert.Contains(t, document, `name="&lt;-&#34;op&#34;"`)
	assert.Contains(t, document, "ends ]]]]><![CDATA[> early")
	assert.NotContains(t, document, "a ]]> b")

	var parsed struct {
		Name        string `xml:"name,attr"`
		Description string `xml:"description"`
		Help        string `xml:"help"`
		ConfigFile  string `xml:"configfiles>configfile"`
	}

	require.NoError(t, xml.Unmarshal([]byte(document), &parsed))
	assert.Equal(t, `<-"op"`, parsed.Name)
	assert.Equal(t, "ends ]]> early", parsed.Description)
	assert.Contains(t, parsed.Help, "a ]]> b")
	assert.Contains(t, parsed.ConfigFile, "x[[\"a\"]]>1")
}

func TestRenderMacros(t *testing.T) {
	t.Parallel()

	document, err := descriptor.RenderMacros(descriptor.Package{
		RName:          "demo",
		PackageName:    "r-demo",
		PackageVersion: "1.2.3",
	})
	require.NoError(t, err)
	requireWellFormed(t, document)

	assert.Contains(t, document, `<requirement type="package" version="1.2.3">r-demo</requirement>`)
	assert.Contains(t, document, `suppressMessages(library(demo));cat(toString(packageVersion("demo")))`)
	assert.Contains(t, document, `<token name="@VERSION@">1.2.3</token>`)
	assert.Contains(t, document, `<token name="@RSCRIPT_LOAD_TABULAR_FILE@">`)
	assert.Contains(t, document, `<xml name="params_load_tabular_file">`)
	assert.Contains(t, document, "library(demo)\ninput_abundance <- read.table(")
}

func TestRenderLoadMatrix(t *testing.T) {
	t.Parallel()

	document, err := descriptor.RenderLoadMatrix(descriptor.Package{
		RName:             "demo",
		GalaxyToolVersion: "0.0.2",
	})
	require.NoError(t, err)
	requireWellFormed(t, document)

	assert.True(t, strings.HasPrefix(document,
		`<tool id="r_load_matrix" name="Load Tabular Data into R" version="0.0.2">`))
	assert.Contains(t, document, "<import>demo_macros.xml</import>")
	assert.Contains(t, document, `value="demo_in.tabular"`)
}

func TestFileNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "demo_f.xml", descriptor.Tool{ID: "demo_f"}.FileName())
	assert.Equal(t, "demo_macros.xml", descriptor.MacrosFile("demo"))
	assert.Equal(t, "r_load_matrix.xml", descriptor.LoadMatrixFile)
}
