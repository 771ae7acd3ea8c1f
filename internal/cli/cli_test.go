package cli

import (
	"bytes"
	"path/filepath"
	"testing"
)

// execute runs the root command with the given args, capturing stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// testDB returns a path for a fresh database file.
func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "kv.db")
}
