package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSpanStatementLength = 512

var (
	statementWhitespace = regexp.MustCompile(`\s+`)
	// A pick upsert binds one placeholder tuple per graded pick.
	repeatedValueTuples = regexp.MustCompile(`VALUES (\([^()]*\))((?:, \([^()]*\))+)`)
)

// spanStatement is the otelsql query formatter. It flattens whitespace and folds the
// tuples of a batched upsert into the first one plus a row count before truncating.
func spanStatement(query string) string {
	stmt := statementWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if stmt == "" {
		return stmt
	}

	stmt = repeatedValueTuples.ReplaceAllStringFunc(stmt, func(values string) string {
		parts := repeatedValueTuples.FindStringSubmatch(values)
		rows := 1 + strings.Count(parts[2], "(")
		return fmt.Sprintf("VALUES %s /* %d rows */", parts[1], rows)
	})

	if len(stmt) > maxSpanStatementLength {
		return stmt[:maxSpanStatementLength] + "..."
	}
	return stmt
}
