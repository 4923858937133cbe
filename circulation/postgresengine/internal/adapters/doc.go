// Package adapters provide database adapter implementations for the PostgreSQL circulation store.
//
// The adapters support three PostgreSQL database libraries: pgx.Pool, sql.DB, and sqlx.DB.
// All of them provide equivalent functionality through the common DBAdapter interface,
// including transactions, so the store works with any supported connection type.
//
// The pgx adapter optionally routes reads to a replica pool when the context asks for
// eventual consistency.
package adapters
