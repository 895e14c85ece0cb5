package setup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adhub/adhub/internal/samba"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDomainState(t *testing.T, config *samba.Config) {
	t.Helper()
	require.NoError(t, os.WriteFile(config.ConfPath, []byte("server role = active directory domain controller\n"), 0o644))
	for _, dir := range []string{"private", "sysvol", "bind-dns", "state"} {
		require.NoError(t, os.MkdirAll(filepath.Join(config.StateDir, dir), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(config.StateDir, "private", "sam.ldb"), []byte("ldb"), 0o600))
}

func TestResetBacksUpAndRemovesState(t *testing.T) {
	config := testConfig(t)
	seedDomainState(t, config)

	// pgrep reporting exit 1 means samba stopped cleanly.
	runner := &scriptedRunner{responses: map[string]samba.Result{
		"pgrep -x samba": {ExitCode: 1},
	}}
	r := NewResetter(runner, config)

	backupDir, err := r.Reset(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(config.ConfPath)
	assert.True(t, os.IsNotExist(err), "configuration must be removed")

	_, err = os.Stat(filepath.Join(config.StateDir, "private", "sam.ldb"))
	assert.True(t, os.IsNotExist(err), "directory database must be removed")

	for _, dir := range []string{config.StateDir, filepath.Join(config.StateDir, "private")} {
		info, statErr := os.Stat(dir)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	}

	backedUpConf, err := os.ReadFile(filepath.Join(backupDir, "smb.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(backedUpConf), "server role")

	backedUpDB, err := os.ReadFile(filepath.Join(backupDir, "samba_lib", "private", "sam.ldb"))
	require.NoError(t, err)
	assert.Equal(t, "ldb", string(backedUpDB))
}

func TestResetEscalatesToSigkill(t *testing.T) {
	config := testConfig(t)
	seedDomainState(t, config)

	// pgrep exit 0 means samba survived the first pkill.
	runner := &scriptedRunner{responses: map[string]samba.Result{
		"pgrep -x samba": {ExitCode: 0, Stdout: "4242\n"},
	}}
	r := NewResetter(runner, config)

	_, err := r.Reset(context.Background())
	require.NoError(t, err)

	var sawSigkill bool
	for _, call := range runner.calls {
		if len(call) >= 2 && call[0] == "pkill" && call[1] == "-9" {
			sawSigkill = true
		}
	}
	assert.True(t, sawSigkill)
}
