package store

import "context"

// Stats summarizes the contents of the store.
type Stats struct {
	// Keys is the number of key records.
	Keys int64 `json:"keys"`

	// Values is the number of value records, orphaned ones included.
	Values int64 `json:"values"`

	// Orphans is the number of value records no key references. These
	// accumulate from overwrites and deletes and are reclaimed only by
	// Compact.
	Orphans int64 `json:"orphans"`
}

// Compact deletes value records that no key references and returns how
// many were removed.
//
// Put and Delete never remove value rows themselves (the interchange
// contract leaves orphans in place), so reclaiming the space is a
// separate, explicitly invoked operation. Running it concurrently with
// writers is safe - the deletion and the referencing check happen in one
// transaction.
func (s *Store) Compact(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("compact: begin tx", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM vals WHERE ID NOT IN (SELECT valueID FROM keys)
	`)
	if err != nil {
		return 0, classify("compact: delete orphans", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, classify("compact: rows affected", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, classify("compact: commit", err)
	}

	return removed, nil
}

// Stats reports key, value, and orphaned-value record counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM keys`).Scan(&st.Keys); err != nil {
		return Stats{}, classify("stats: count keys", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vals`).Scan(&st.Values); err != nil {
		return Stats{}, classify("stats: count vals", err)
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vals
		WHERE ID NOT IN (SELECT valueID FROM keys)
	`).Scan(&st.Orphans); err != nil {
		return Stats{}, classify("stats: count orphans", err)
	}

	return st, nil
}
