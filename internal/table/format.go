package table

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var headerReplacer = strings.NewReplacer("/", " ", "_", " ")

// FormatHeader converts a flattened key into a display label: slashes and
// underscores become spaces, then each word is title-cased. Formatting an
// already-formatted label returns it unchanged.
//
// A cases.Caser carries state and is not safe for concurrent use, so one
// is created per call.
func FormatHeader(key string) string {
	return cases.Title(language.Und).String(headerReplacer.Replace(key))
}
