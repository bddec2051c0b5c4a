// Package config resolves the options of a generation run from command-line
// flags, R2G2_* environment variables and an optional r2g2.yaml file, in
// that order of precedence.
package config
