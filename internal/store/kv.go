package store

import (
	"context"
	"database/sql"
	"errors"
)

// Get returns the value associated with key.
//
// The lookup joins through the key's value reference and matches the key
// exactly; the unique index idx_keys backs the match. Returns ErrNotFound
// when no key record exists - an expected outcome, distinguishable with
// errors.Is or IsNotFound. Read-only; no side effects.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT vals.value FROM keys
		INNER JOIN vals ON vals.ID = keys.valueID
		WHERE keys.key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", classify("get", err)
	}

	return value, nil
}

// Put associates value with key so that a subsequent Get(key) returns
// value.
//
// The value row is deduplicated: if the payload already exists in vals
// its ID is reused, otherwise a new row is inserted. The key row is then
// upserted to point at that ID. Both steps run in one transaction -
// either both persist or neither does, so a failed Put leaves the store
// unchanged.
//
// Re-putting a key with a new value repoints the key and leaves the
// previous value row in place, even when nothing references it anymore;
// see Compact.
func (s *Store) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if value == "" {
		return ErrEmptyValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("put: begin tx", err)
	}
	defer tx.Rollback() // No-op if committed

	// Step 1: find or insert the value row
	var valueID int64
	err = tx.QueryRowContext(ctx, `
		SELECT ID FROM vals WHERE value = ?
	`, value).Scan(&valueID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.ExecContext(ctx, `
			INSERT INTO vals (value) VALUES (?)
		`, value)
		if err != nil {
			return classify("put: insert value", err)
		}
		valueID, err = result.LastInsertId()
		if err != nil {
			return classify("put: last insert id", err)
		}
	case err != nil:
		return classify("put: select value", err)
	}

	// Step 2: upsert the key row. ON CONFLICT targets the unique index
	// idx_keys on keys(key).
	_, err = tx.ExecContext(ctx, `
		INSERT INTO keys (key, valueID) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET valueID = excluded.valueID
	`, key, valueID)
	if err != nil {
		return classify("put: upsert key", err)
	}

	if err := tx.Commit(); err != nil {
		return classify("put: commit", err)
	}

	return nil
}

// Delete removes the key record for key. Deleting a key that does not
// exist is a no-op, not an error - Delete is idempotent. The associated
// value row is never cascaded; it stays behind, orphaned if no other key
// references it, until Compact is invoked.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		// Empty keys are never stored, so there is nothing to remove.
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("delete: begin tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM keys WHERE key = ?
	`, key); err != nil {
		return classify("delete: delete key", err)
	}

	if err := tx.Commit(); err != nil {
		return classify("delete: commit", err)
	}

	return nil
}

// ValueCount returns how many vals rows hold the given payload. With the
// schema intact the answer is 0 or 1 (vals.value is unique); the count
// form exists so callers can verify the dedup invariant directly.
func (s *Store) ValueCount(ctx context.Context, value string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vals WHERE value = ?
	`, value).Scan(&count)
	if err != nil {
		return 0, classify("value count", err)
	}
	return count, nil
}
