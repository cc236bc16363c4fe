// Package migrations embeds the goose SQL migrations so the schema travels
// with the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
