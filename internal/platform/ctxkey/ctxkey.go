// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys shared by middleware, ctxutil and respond.
//
// It has no imports so that respond can read the request ID and logger
// without depending on the identity and profile packages.
package ctxkey

type key uint8

const (
	KeyRequestID key = iota + 1
	KeyLogger
	KeySession
	KeyProfile
)
