package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/tree"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	out, log := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := New()
	cmd.SetOut(out)
	cmd.SetErr(log)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), log.String(), err
}

func TestBuildCmd(t *testing.T) {
	out, log, err := execute(t, "build", "--log-encoder", "json", "2", "1", "3")
	require.NoError(t, err)
	// Inorder follows the input order.
	require.Equal(t, "\t┌───┤ 3\n────┤ 1\n\t└───┤ 2\n\n", out)
	require.Contains(t, log, `"msg":"tree built"`)
	require.Contains(t, log, `"height":1`)
	require.Contains(t, log, `"inorder":[2,1,3]`)

	out, _, err = execute(t, "build", "--sort", "2", "1", "3")
	require.NoError(t, err)
	require.Equal(t, "\t┌───┤ 3\n────┤ 2\n\t└───┤ 1\n\n", out)
}

func TestBuildCmd_InvalidArgs(t *testing.T) {
	_, _, err := execute(t, "build")
	require.Error(t, err)
	_, _, err = execute(t, "build", "1", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), `"x" is not an integer`)
}

func TestAVLCmd(t *testing.T) {
	out, log, err := execute(t, "avl", "--log-encoder", "json", "--put", "1,3,2,5,4", "--delete", "3,42")
	require.NoError(t, err)
	require.Contains(t, log, `"keys":[1,2,4,5]`)
	require.Contains(t, log, `"msg":"key not found"`)
	require.Contains(t, log, `"component":"avl"`)
	require.Contains(t, out, "┤ 2:2")
	require.Contains(t, out, "┤ 5:5")
	require.NotContains(t, out, "┤ 3:3")
}

func TestAVLCmd_LoadAndDesc(t *testing.T) {
	out, log, err := execute(t, "avl", "--log-encoder", "json", "--desc", "--put", "1,2,3")
	require.NoError(t, err)
	require.Contains(t, log, `"keys":[3,2,1]`)
	require.True(t, strings.HasPrefix(out, "\t┌───┤ 1:1\n"))

	_, _, err = execute(t, "avl", "--load", "3,1")
	require.ErrorIs(t, err, tree.ErrUnsortedKeys)
	require.ErrorIs(t, err, tree.ErrInvalidKey)

	_, log, err = execute(t, "avl", "--log-encoder", "json", "--load", "1,2,3,4", "--put", "0")
	require.NoError(t, err)
	require.Contains(t, log, `"keys":[0,1,2,3,4]`)
}

func TestAVLCmd_PrometheusMetrics(t *testing.T) {
	out, _, err := execute(t, "avl", "--metrics", "prometheus", "--put", "1,2,3")
	require.NoError(t, err)
	require.Contains(t, out, "xtree_avl_rotation_count_total 1")
	require.Contains(t, out, "xtree_avl_entry_count 3")
	require.Contains(t, out, "# TYPE app_core_goroutines gauge")
	require.Contains(t, out, "app_heap_alloc_bytes")
}

func TestConfig_EnvAndFile(t *testing.T) {
	t.Setenv("XTREE_LOG_ENCODER", "json")
	_, log, err := execute(t, "build", "1")
	require.NoError(t, err)
	require.Contains(t, log, `"msg":"tree built"`)

	t.Setenv("XTREE_LOG_LEVEL", "error")
	_, log, err = execute(t, "build", "1")
	require.NoError(t, err)
	require.Empty(t, log)

	cfgFile := filepath.Join(t.TempDir(), "xtree.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("metrics: bogus\n"), 0o600))
	_, _, err = execute(t, "--config", cfgFile, "build", "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown metrics exporter "bogus"`)

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "build", "1")
	require.Error(t, err)
}

func TestAVLCmd_StdoutMetrics(t *testing.T) {
	out, _, err := execute(t, "avl", "--metrics", "stdout", "--put", "1,2,3")
	require.NoError(t, err)
	require.Contains(t, out, "xtree.avl.restructure.count")
	require.Contains(t, out, "xtree/avl/cli")
}
