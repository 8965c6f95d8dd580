package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/failsafe/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestConfigDir_EnvOverride(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "/tmp/fs-config")
	assert.Equal(t, "/tmp/fs-config", paths.ConfigDir())
	assert.Equal(t, filepath.Join("/tmp/fs-config", "failsafe.toml"), paths.ConfigFile())
}

func TestDataDir_EnvOverride(t *testing.T) {
	t.Setenv(paths.EnvDataDir, "/tmp/fs-data")
	assert.Equal(t, "/tmp/fs-data", paths.DataDir())
	assert.Equal(t, filepath.Join("/tmp/fs-data", "state.json"), paths.StateFile())
}

func TestDataDir_Default(t *testing.T) {
	t.Setenv(paths.EnvDataDir, "")
	dir := paths.DataDir()
	assert.Equal(t, "failsafe", filepath.Base(dir))
}
