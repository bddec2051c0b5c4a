package naming

import (
	"regexp"
	"strings"
)

// syntacticName matches names R accepts without back-quotes.
var syntacticName = regexp.MustCompile(`^((\.[A-Za-z_.])|[A-Za-z])[A-Za-z0-9_.]*$|^\.$`)

// reservedWords cannot be used bare even though they match syntacticName.
var reservedWords = map[string]struct{}{
	"if": {}, "else": {}, "repeat": {}, "while": {}, "function": {}, "for": {}, "next": {},
	"break": {}, "TRUE": {}, "FALSE": {}, "NULL": {}, "Inf": {}, "NaN": {}, "NA": {},
	"NA_integer_": {}, "NA_real_": {}, "NA_character_": {}, "in": {},
}

// Sanitize replaces every rune that is not an ASCII letter, digit or
// underscore with an underscore. The result has the same rune count as the
// input.
func Sanitize(name string) string {
	var builder strings.Builder

	builder.Grow(len(name))

	for _, r := range name {
		if isSafeRune(r) {
			builder.WriteRune(r)

			continue
		}

		builder.WriteByte('_')
	}

	return builder.String()
}

// QuoteR returns name unchanged when R can parse it bare, otherwise wrapped
// in back-quotes with embedded back-quotes and backslashes escaped.
func QuoteR(name string) string {
	if _, reserved := reservedWords[name]; !reserved && syntacticName.MatchString(name) {
		return name
	}

	escaped := strings.NewReplacer(`\`, `\\`, "`", "\\`").Replace(name)

	return "`" + escaped + "`"
}

func isSafeRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
