// Package harness provides a conformance testing framework for the
// key/value store.
//
// Scenarios are YAML files describing a sequence of store operations
// (put, get, del, compact) with optional per-step expectations, followed
// by assertions on the final state. Each scenario runs against a fresh
// in-memory database for isolation and produces an operation trace that
// can be compared against a golden file.
//
// Scenarios intended for golden-file comparison must set a fixed
// run_token; otherwise a fresh one is generated per run and the snapshot
// would never be stable.
package harness
