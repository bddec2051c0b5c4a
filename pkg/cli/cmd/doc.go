// Package cmd holds the r2g2 command tree. The root command generates the
// tools; schema and dump help authoring package manifests.
package cmd
