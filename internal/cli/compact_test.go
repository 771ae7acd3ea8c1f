package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_RemovesOrphans(t *testing.T) {
	db := testDB(t)
	seedStatsFixture(t, db) // 1 orphan

	out, err := execute(t, "--db", db, "compact")
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 orphaned value(s)\n", out)

	// Orphan is gone, live data untouched
	out, err = execute(t, "--db", db, "--format", "json", "stats")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"keys":2,"values":2,"orphans":0}}`, out)

	out, err = execute(t, "--db", db, "get", "a")
	require.NoError(t, err)
	assert.Equal(t, "v3\n", out)
}

func TestCompact_NothingToDo(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, "--db", db, "--format", "json", "compact")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"removed":0}}`, out)
}
