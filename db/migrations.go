// Package db 内嵌 SQL 迁移脚本
package db

import "embed"

// Migrations 按 <version>_<name>_up.sql / _down.sql 命名
//
//go:embed migrations/*.sql
var Migrations embed.FS
