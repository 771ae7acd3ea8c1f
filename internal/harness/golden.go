package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RunToken     string       `json:"run_token,omitempty"`
	Trace        []TraceEvent `json:"trace"`
}

// RunWithGolden executes a scenario and compares the trace against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The scenario must set a fixed run_token, otherwise the snapshot can
// never match a golden file.
//
// Returns an error if scenario execution fails; expectation failures
// and golden mismatches are reported through t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	if scenario.RunToken == "" {
		return fmt.Errorf("scenario %q has no fixed run_token; golden comparison would never be stable", scenario.Name)
	}

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		RunToken:     result.RunToken,
		Trace:        result.Trace,
	}

	traceJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
