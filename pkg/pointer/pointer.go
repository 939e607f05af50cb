// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer helps with the optional columns of the back-office forms.
package pointer

import "strings"

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// NilIfBlank trims the string p refers to and returns nil when nothing is left.
// Optional form fields arrive as "" as often as they arrive absent.
func NilIfBlank(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
