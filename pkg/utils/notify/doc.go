// Package notify writes the short status lines r2g2 prints for its users.
//
// Every line starts with a symbol chosen by [Kind]: success (✔), error (✗),
// warning (⚠), info (ℹ), activity (►) and generate (✚). Titles use an emoji
// instead. Colors come from fatih/color and switch off automatically when the
// output is not a terminal.
package notify
