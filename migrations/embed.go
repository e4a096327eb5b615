// Package migrations embeds the goose SQL migrations so that the server binary,
// the migrate command and the integration tests all apply the same schema.
package migrations

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
