package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_RoundTrip(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, "--db", db, "put", "plop", "42")
	require.NoError(t, err)
	assert.Empty(t, out, "put is silent in text mode")

	out, err = execute(t, "--db", db, "get", "plop")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestGet_JSON(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, "--db", db, "put", "plop", "42")
	require.NoError(t, err)

	out, err := execute(t, "--db", db, "--format", "json", "get", "plop")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"key":"plop","value":"42"}}`, out)
}

func TestGet_NotFound(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, "--db", db, "get", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, GetExitCode(err))
	assert.Contains(t, out, "NOT_FOUND")
	// The exit error carries no message; output was already emitted
	assert.Empty(t, err.Error())
}

func TestGet_NotFoundJSON(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, "--db", db, "--format", "json", "get", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, GetExitCode(err))
	assert.JSONEq(t, `{"status":"error","error":{"code":"NOT_FOUND","message":"key \"missing\" not found"}}`, out)
}

func TestGet_Overwrite(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, "--db", db, "put", "plop", "42")
	require.NoError(t, err)
	_, err = execute(t, "--db", db, "put", "plop", "43")
	require.NoError(t, err)

	out, err := execute(t, "--db", db, "get", "plop")
	require.NoError(t, err)
	assert.Equal(t, "43\n", out)
}

func TestGet_UnwritablePathExitsCommandError(t *testing.T) {
	_, err := execute(t, "--db", "/nonexistent/dir/kv.db", "get", "k")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
