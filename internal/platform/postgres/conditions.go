// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"strconv"
	"strings"
)

// Conditions accumulates WHERE clauses and their positional arguments.
//
//	var where postgres.Conditions
//	where.Add("status = ?", "ativo")
//	where.Add("(nome ILIKE ? OR email ILIKE ?)", "%ana%", "%ana%")
//	query := "SELECT ... FROM artistas " + where.Clause()
type Conditions struct {
	clauses []string
	args    []any
}

// Add appends a clause, replacing each '?' with the next positional placeholder.
func (c *Conditions) Add(clause string, values ...any) {
	var builder strings.Builder
	next := 0

	for _, r := range clause {
		if r == '?' && next < len(values) {
			c.args = append(c.args, values[next])
			builder.WriteString("$" + strconv.Itoa(len(c.args)))
			next++
			continue
		}
		builder.WriteRune(r)
	}

	c.clauses = append(c.clauses, builder.String())
}

// Placeholder registers a value outside the WHERE clause (LIMIT, OFFSET) and returns its "$n".
func (c *Conditions) Placeholder(value any) string {
	c.args = append(c.args, value)
	return "$" + strconv.Itoa(len(c.args))
}

// Clause renders "WHERE a AND b", or an empty string without conditions.
func (c *Conditions) Clause() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(c.clauses, " AND ")
}

// Args returns the positional arguments in placeholder order.
func (c *Conditions) Args() []any {
	return c.args
}
