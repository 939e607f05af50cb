// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gravadora/pkg/pointer"
)

/*
TestNilIfBlank normalizes empty and padded optional values.
*/
func TestNilIfBlank(t *testing.T) {
	assert.Nil(t, pointer.NilIfBlank(nil))
	assert.Nil(t, pointer.NilIfBlank(pointer.To("   ")))
	assert.Equal(t, "rock", *pointer.NilIfBlank(pointer.To("  rock ")))
}
