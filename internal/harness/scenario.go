package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios validate the store contract by executing a sequence of
// operations and asserting on the resulting trace and final state.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunToken is an optional fixed token for deterministic runs.
	// If empty, a fresh UUIDv7 is generated; golden-file scenarios
	// must set an explicit token.
	RunToken string `yaml:"run_token,omitempty"`

	// Steps contains the operations to execute, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store state.
	// Supported types: value, not_found, val_count, key_count, orphan_count
	Assertions []Assertion `yaml:"assertions"`
}

// Step represents a single store operation.
type Step struct {
	// Op is the operation: "put", "get", "del", or "compact".
	Op string `yaml:"op"`

	// Key is the key operated on (put, get, del).
	Key string `yaml:"key,omitempty"`

	// Value is the payload (put only).
	Value string `yaml:"value,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, the step is only required not to fail.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected step outcome.
type ExpectClause struct {
	// Value is the payload a get must return.
	Value string `yaml:"value,omitempty"`

	// NotFound expects a get to find no key record.
	NotFound bool `yaml:"not_found,omitempty"`

	// Removed is the number of orphans a compact must reclaim.
	Removed *int64 `yaml:"removed,omitempty"`
}

// Assertion validates final store state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "value": Get(key) returns the given value
	// - "not_found": Get(key) reports a missing key
	// - "val_count": the vals table holds Count rows with the payload
	// - "key_count": the store holds Count key records
	// - "orphan_count": the store holds Count orphaned value records
	Type string `yaml:"type"`

	// Key is the key to look up (value, not_found).
	Key string `yaml:"key,omitempty"`

	// Value is the expected or counted payload (value, val_count).
	Value string `yaml:"value,omitempty"`

	// Count is the expected number of records (val_count, key_count,
	// orphan_count).
	Count int64 `yaml:"count,omitempty"`
}

// Operation constants.
const (
	OpPut     = "put"
	OpGet     = "get"
	OpDel     = "del"
	OpCompact = "compact"
)

// Assertion type constants.
const (
	AssertValue       = "value"
	AssertNotFound    = "not_found"
	AssertValCount    = "val_count"
	AssertKeyCount    = "key_count"
	AssertOrphanCount = "orphan_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "asertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpPut:
		if step.Key == "" {
			return fmt.Errorf("steps[%d]: key is required for put", index)
		}
		if step.Value == "" {
			return fmt.Errorf("steps[%d]: value is required for put", index)
		}
		if step.Expect != nil {
			return fmt.Errorf("steps[%d]: expect is not supported for put", index)
		}
	case OpGet:
		if step.Key == "" {
			return fmt.Errorf("steps[%d]: key is required for get", index)
		}
		if step.Expect != nil {
			if step.Expect.NotFound && step.Expect.Value != "" {
				return fmt.Errorf("steps[%d].expect: value and not_found are mutually exclusive", index)
			}
			if step.Expect.Removed != nil {
				return fmt.Errorf("steps[%d].expect: removed applies only to compact", index)
			}
		}
	case OpDel:
		if step.Key == "" {
			return fmt.Errorf("steps[%d]: key is required for del", index)
		}
		if step.Expect != nil {
			return fmt.Errorf("steps[%d]: expect is not supported for del", index)
		}
	case OpCompact:
		if step.Key != "" || step.Value != "" {
			return fmt.Errorf("steps[%d]: compact takes no key or value", index)
		}
		if step.Expect != nil && (step.Expect.NotFound || step.Expect.Value != "") {
			return fmt.Errorf("steps[%d].expect: only removed applies to compact", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertValue:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for value", index)
		}
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for value", index)
		}
	case AssertNotFound:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for not_found", index)
		}
	case AssertValCount:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for val_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertKeyCount, AssertOrphanCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
