package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/picani/sqlitekv/internal/store"
)

// TraceEvent records one executed operation and its outcome.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Op      string `json:"op"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"` // put input / get result
	Outcome string `json:"outcome"`         // "ok" or "not_found"
	Removed int64  `json:"removed,omitempty"`
}

// Outcome values for trace events.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
)

// Result holds the outcome of a scenario run.
type Result struct {
	// RunToken identifies the run (fixed by the scenario or generated).
	RunToken string

	// Passed is true when every expectation and assertion held.
	Passed bool

	// Failures lists every expectation or assertion that did not hold.
	Failures []string

	// Trace is the ordered log of executed operations.
	Trace []TraceEvent
}

// harness executes one scenario against one store.
type harness struct {
	store  *store.Store
	logger *slog.Logger
	seq    int64
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Storage failures abort the run with an error; failed expectations and
// assertions are collected in the result instead.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	token := scenario.RunToken
	if token == "" {
		token = uuid.Must(uuid.NewV7()).String()
	}

	h := &harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()
	result := &Result{RunToken: token}

	h.logger.Debug("running scenario", "name", scenario.Name, "run_token", token)

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, err
		}
	}

	if err := h.evaluateAssertions(ctx, scenario.Assertions, result); err != nil {
		return nil, err
	}

	result.Passed = len(result.Failures) == 0
	return result, nil
}

// executeStep runs one operation, appends its trace event, and checks
// the step's expectation.
func (h *harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	h.seq++
	event := TraceEvent{Seq: h.seq, Op: step.Op, Key: step.Key}

	switch step.Op {
	case OpPut:
		if err := h.store.Put(ctx, step.Key, step.Value); err != nil {
			return fmt.Errorf("steps[%d]: put %q: %w", index, step.Key, err)
		}
		event.Value = step.Value
		event.Outcome = OutcomeOK

	case OpGet:
		value, err := h.store.Get(ctx, step.Key)
		switch {
		case store.IsNotFound(err):
			event.Outcome = OutcomeNotFound
		case err != nil:
			return fmt.Errorf("steps[%d]: get %q: %w", index, step.Key, err)
		default:
			event.Value = value
			event.Outcome = OutcomeOK
		}
		h.checkGetExpect(index, step, event, result)

	case OpDel:
		if err := h.store.Delete(ctx, step.Key); err != nil {
			return fmt.Errorf("steps[%d]: del %q: %w", index, step.Key, err)
		}
		event.Outcome = OutcomeOK

	case OpCompact:
		removed, err := h.store.Compact(ctx)
		if err != nil {
			return fmt.Errorf("steps[%d]: compact: %w", index, err)
		}
		event.Outcome = OutcomeOK
		event.Removed = removed
		if step.Expect != nil && step.Expect.Removed != nil && removed != *step.Expect.Removed {
			result.Failures = append(result.Failures, fmt.Sprintf(
				"steps[%d]: compact removed %d, expected %d", index, removed, *step.Expect.Removed))
		}
	}

	result.Trace = append(result.Trace, event)
	return nil
}

// checkGetExpect validates a get step's expectation against its event.
func (h *harness) checkGetExpect(index int, step Step, event TraceEvent, result *Result) {
	if step.Expect == nil {
		return
	}

	switch {
	case step.Expect.NotFound && event.Outcome != OutcomeNotFound:
		result.Failures = append(result.Failures, fmt.Sprintf(
			"steps[%d]: get %q returned %q, expected not found", index, step.Key, event.Value))
	case step.Expect.Value != "" && event.Outcome == OutcomeNotFound:
		result.Failures = append(result.Failures, fmt.Sprintf(
			"steps[%d]: get %q found nothing, expected %q", index, step.Key, step.Expect.Value))
	case step.Expect.Value != "" && event.Value != step.Expect.Value:
		result.Failures = append(result.Failures, fmt.Sprintf(
			"steps[%d]: get %q returned %q, expected %q", index, step.Key, event.Value, step.Expect.Value))
	}
}
