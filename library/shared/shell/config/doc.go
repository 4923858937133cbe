// Package config reads the process configuration from the environment and builds
// the PostgreSQL connections (pgx.Pool, sql.DB, sqlx.DB) and the OpenTelemetry providers from it.
//
// This package is part of the shell (infrastructure) layer.
package config
