// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gravadora/pkg/query"
)

/*
TestStringSlice splits, trims and drops empty entries.
*/
func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"gravacao", "mixagem"}, query.StringSlice(" gravacao, ,mixagem ,"))
}
