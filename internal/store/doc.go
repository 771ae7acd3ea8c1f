// Package store provides the SQLite-backed key/value store.
//
// One Store owns one database file. Keys map to values through two
// tables: keys(key, valueID) and vals(ID, value). Values are stored once
// and referenced by ID, so two keys holding the same payload share a
// single vals row. The unique index idx_keys on keys(key) backs exact
// lookups.
//
// # Wire Contract
//
// The schema (table names, column names, index name) is shared with
// SQLiteKV bindings in other languages. A file written by one binding
// must open in any other without migration, so the schema in schema.sql
// is a fixed contract, not an internal detail.
//
// # Semantics
//
//   - Get returns ErrNotFound for a missing key; this is a normal
//     outcome, never a storage failure.
//   - Put deduplicates the value row and upserts the key row inside one
//     transaction.
//   - Delete is idempotent and does not cascade to vals; a value row
//     left without referencing keys stays on disk until Compact is
//     invoked explicitly.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The first three are passthrough options (see Options); the store adds
// no locking or retry layer of its own on top of SQLite's.
package store
