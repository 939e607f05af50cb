// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the back-office database.
//
// Repositories build their SQL from these definitions so a renamed column is
// a one-line change here instead of a search across every query.
package schema

import "strings"

// List joins columns for a SELECT or RETURNING clause.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}

// Qualified prefixes every column with a table alias.
func Qualified(alias string, columns []string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
