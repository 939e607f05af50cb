// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gravadora/pkg/slug"
)

/*
TestFrom strips accents and collapses separators.
*/
func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Contrato de Gravação":   "contrato-de-gravacao",
		"  Ficha técnica (v2) ": "ficha-tecnica-v2",
		"Orçamento__Final!!":     "orcamento-final",
		"***":                    "",
	}

	for input, want := range tests {
		assert.Equal(t, want, slug.From(input), input)
	}
}
