// Package database carries the relational schema as embedded migrations.
package database

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
