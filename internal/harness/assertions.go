package harness

import (
	"context"
	"fmt"

	"github.com/picani/sqlitekv/internal/store"
)

// evaluateAssertions checks every final-state assertion, collecting
// failures in the result. Storage failures abort with an error.
func (h *harness) evaluateAssertions(ctx context.Context, assertions []Assertion, result *Result) error {
	for i, a := range assertions {
		switch a.Type {
		case AssertValue:
			value, err := h.store.Get(ctx, a.Key)
			if store.IsNotFound(err) {
				result.Failures = append(result.Failures, fmt.Sprintf(
					"assertions[%d]: key %q not found, expected %q", i, a.Key, a.Value))
				continue
			}
			if err != nil {
				return fmt.Errorf("assertions[%d]: get %q: %w", i, a.Key, err)
			}
			if value != a.Value {
				result.Failures = append(result.Failures, fmt.Sprintf(
					"assertions[%d]: key %q holds %q, expected %q", i, a.Key, value, a.Value))
			}

		case AssertNotFound:
			_, err := h.store.Get(ctx, a.Key)
			if err == nil {
				result.Failures = append(result.Failures, fmt.Sprintf(
					"assertions[%d]: key %q exists, expected not found", i, a.Key))
				continue
			}
			if !store.IsNotFound(err) {
				return fmt.Errorf("assertions[%d]: get %q: %w", i, a.Key, err)
			}

		case AssertValCount:
			count, err := h.store.ValueCount(ctx, a.Value)
			if err != nil {
				return fmt.Errorf("assertions[%d]: value count %q: %w", i, a.Value, err)
			}
			if count != a.Count {
				result.Failures = append(result.Failures, fmt.Sprintf(
					"assertions[%d]: %d value record(s) hold %q, expected %d", i, count, a.Value, a.Count))
			}

		case AssertKeyCount:
			stats, err := h.store.Stats(ctx)
			if err != nil {
				return fmt.Errorf("assertions[%d]: stats: %w", i, err)
			}
			if stats.Keys != a.Count {
				result.Failures = append(result.Failures, fmt.Sprintf(
					"assertions[%d]: %d key record(s), expected %d", i, stats.Keys, a.Count))
			}

		case AssertOrphanCount:
			stats, err := h.store.Stats(ctx)
			if err != nil {
				return fmt.Errorf("assertions[%d]: stats: %w", i, err)
			}
			if stats.Orphans != a.Count {
				result.Failures = append(result.Failures, fmt.Sprintf(
					"assertions[%d]: %d orphaned value(s), expected %d", i, stats.Orphans, a.Count))
			}
		}
	}

	return nil
}
