package query

import (
	"fmt"
	"strings"
)

// QuoteIdent quotes a SQL identifier, doubling any embedded quotes.
func QuoteIdent(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return fmt.Sprintf(`"%s"`, escaped)
}

// QuoteLiteral quotes a string literal, doubling any embedded quotes.
// File paths interpolated into read_csv_auto and friends go through
// this so a quote in a filename cannot break out of the literal.
func QuoteLiteral(value string) string {
	escaped := strings.ReplaceAll(value, `'`, `''`)
	return fmt.Sprintf(`'%s'`, escaped)
}
