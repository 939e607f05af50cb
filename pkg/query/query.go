// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-valued URL query parameters.
package query

import "strings"

// StringSlice splits a comma-separated parameter ("gravacao,mixagem") into
// trimmed values, dropping empty ones. An empty parameter yields nil.
func StringSlice(value string) []string {
	if value == "" {
		return nil
	}

	var values []string
	for part := range strings.SplitSeq(value, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			values = append(values, clean)
		}
	}
	return values
}
