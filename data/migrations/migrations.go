// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// Files holds every NNNNNN_name.{up,down}.sql file in this directory.
//
//go:embed *.sql
var Files embed.FS
