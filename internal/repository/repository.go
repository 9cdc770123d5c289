package repository

import "strings"

// joinSets joins SET clauses for a partial UPDATE
func joinSets(sets []string) string {
	return strings.Join(sets, ", ")
}
