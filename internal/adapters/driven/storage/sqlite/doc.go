// Package sqlite provides the SQLite implementation of the record
// store, the idempotent persistence sink behind the JSONL output tree.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Idempotence
// comes from unique constraints: records are keyed on subject +
// source_type + url + video/comment ids + content fingerprint, so
// re-running a gather inserts only what is new.
//
// # Schema
//
// The database schema is managed through versioned migrations stored
// in the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.guestscope/data/research.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
