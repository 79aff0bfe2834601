package azure

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript drops an executable shell script into a temp dir and
// returns its path. Stands in for the az binary.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-az")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestRunner_StructuredSuccess(t *testing.T) {
	runner := &Runner{
		Binary:  writeScript(t, `echo '[{"name":"dev","location":"eastus"}]'`),
		Timeout: 5 * time.Second,
	}

	res := runner.Run(context.Background(), []string{"group", "list"}, true)

	require.Equal(t, KindStructured, res.Kind)
	assert.True(t, res.OK())

	var groups []ResourceGroup
	require.NoError(t, res.Decode(&groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "dev", groups[0].Name)
}

func TestRunner_AppendsJSONOutputFlag(t *testing.T) {
	// The script echoes its arguments back, one per line. That output is
	// not JSON, so the result downgrades to raw with the decode error
	// visible, which also exercises the fallback path.
	runner := &Runner{
		Binary:  writeScript(t, `printf '%s\n' "$@"`),
		Timeout: 5 * time.Second,
	}

	res := runner.Run(context.Background(), []string{"account", "list"}, true)

	require.Equal(t, KindRaw, res.Kind)
	assert.True(t, res.OK())
	assert.Error(t, res.DecodeErr, "non-JSON output in structured mode must be tagged")
	assert.Contains(t, res.Raw, "account\nlist\n-o\njson")
}

func TestRunner_UnstructuredMode(t *testing.T) {
	runner := &Runner{
		Binary:  writeScript(t, `printf '%s\n' "$@"`),
		Timeout: 5 * time.Second,
	}

	res := runner.Run(context.Background(), []string{"login"}, false)

	require.Equal(t, KindRaw, res.Kind)
	assert.NoError(t, res.DecodeErr)
	assert.NotContains(t, res.Raw, "-o", "json flag must not be added in raw mode")
}

func TestRunner_EmptyStructuredOutput(t *testing.T) {
	runner := &Runner{
		Binary:  writeScript(t, `exit 0`),
		Timeout: 5 * time.Second,
	}

	res := runner.Run(context.Background(), []string{"account", "set"}, true)

	require.Equal(t, KindRaw, res.Kind)
	assert.NoError(t, res.DecodeErr)
}

func TestRunner_NonZeroExit(t *testing.T) {
	runner := &Runner{
		Binary:  writeScript(t, "echo 'resource not found' >&2\nexit 3"),
		Timeout: 5 * time.Second,
	}

	res := runner.Run(context.Background(), []string{"group", "show"}, true)

	require.Equal(t, KindFailed, res.Kind)
	assert.False(t, res.OK())
	assert.Contains(t, res.Err, "resource not found")
}

func TestRunner_Timeout(t *testing.T) {
	runner := &Runner{
		Binary:  writeScript(t, "exec sleep 10"),
		Timeout: 200 * time.Millisecond,
	}

	start := time.Now()
	res := runner.Run(context.Background(), []string{"login"}, false)
	elapsed := time.Since(start)

	require.Equal(t, KindFailed, res.Kind)
	assert.Contains(t, res.Err, "timed out")
	assert.Less(t, elapsed, 3*time.Second, "timeout must cut the call off near the bound")
}

func TestRunner_SpawnFailure(t *testing.T) {
	runner := &Runner{
		Binary:  filepath.Join(t.TempDir(), "does-not-exist"),
		Timeout: 5 * time.Second,
	}

	res := runner.Run(context.Background(), []string{"login"}, false)

	require.Equal(t, KindFailed, res.Kind)
	assert.NotEmpty(t, res.Err)
}

func TestResult_DecodeRequiresStructured(t *testing.T) {
	res := Result{Kind: KindRaw, Raw: "plain text"}
	var v interface{}
	assert.Error(t, res.Decode(&v))
}

func TestNewRunner_Defaults(t *testing.T) {
	runner := NewRunner()
	assert.Equal(t, "az", runner.Binary)
	assert.Equal(t, 120*time.Second, runner.Timeout)
}
