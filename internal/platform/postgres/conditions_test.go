// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gravadora/internal/platform/postgres"
)

/*
TestConditions numbers placeholders across clauses.
*/
func TestConditions(t *testing.T) {
	var where postgres.Conditions

	// 1. Empty
	assert.Empty(t, where.Clause())
	assert.Empty(t, where.Args())

	// 2. Accumulate
	where.Add("status = ?", "ativo")
	where.Add("(nome ILIKE ? OR email ILIKE ?)", "%ana%", "%ana%")
	limit := where.Placeholder(20)

	assert.Equal(t, "WHERE status = $1 AND (nome ILIKE $2 OR email ILIKE $3)", where.Clause())
	assert.Equal(t, "$4", limit)
	assert.Equal(t, []any{"ativo", "%ana%", "%ana%", 20}, where.Args())
}
