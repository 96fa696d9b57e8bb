package repository

import (
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsAny builds a case-insensitive substring predicate over columns,
// OR-combined, with one argument per column. Both sides go through the store's
// LOWER so they fold the same way (sqlite folds ASCII only).
func containsAny(term string, columns ...string) (string, []any) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + `) LIKE LOWER(?) ESCAPE '\'`
		args[i] = pattern
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}
