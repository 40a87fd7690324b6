package models

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// whitespaceRun matches any run of ASCII or Unicode space characters.
var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// DeriveName lowercases name and replaces every whitespace run with a single
// hyphen. Leading and trailing runs become hyphens as well; no trimming is done.
func DeriveName(name string) string {
	lower := cases.Lower(language.Und).String(name)
	return whitespaceRun.ReplaceAllString(lower, "-")
}
