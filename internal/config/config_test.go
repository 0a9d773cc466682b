package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "cph", cfg.Namespace)
	assert.Equal(t, 10, cfg.Seasonal.Month)
	assert.Equal(t, 31, cfg.Seasonal.Day)
	assert.Equal(t, "cph:herobrine_head_block", cfg.Seasonal.HeadID)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseCustomNamespace(t *testing.T) {
	cfg, err := Parse([]byte("namespace: myh\nseasonal:\n  month: 12\n  day: 25\n"))
	require.NoError(t, err)

	assert.Equal(t, "myh", cfg.Namespace)
	assert.Equal(t, "myh:herobrine_head_block", cfg.Seasonal.HeadID)
	assert.Equal(t, 12, cfg.Seasonal.Month)
	assert.Equal(t, 25, cfg.Seasonal.Day)
}

func TestParseRejectsBadDate(t *testing.T) {
	_, err := Parse([]byte("seasonal:\n  month: 13\n"))
	assert.Error(t, err, "месяц 13 должен отклоняться")
}

func TestParseRejectsDayMissingFromMonth(t *testing.T) {
	_, err := Parse([]byte("seasonal:\n  month: 2\n  day: 31\n"))
	assert.Error(t, err, "31 февраля должно отклоняться")

	_, err = Parse([]byte("seasonal:\n  month: 4\n  day: 31\n"))
	assert.Error(t, err)

	cfg, err := Parse([]byte("seasonal:\n  month: 2\n  day: 29\n"))
	require.NoError(t, err)
	assert.Equal(t, 29, cfg.Seasonal.Day)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heads.yaml")
	require.NoError(t, os.WriteFile(path, []byte("namespace: env\n"), 0o644))

	t.Setenv("HEADS_CONFIG", path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.Namespace)
}

func TestLoadWithoutConfigReturnsDefaults(t *testing.T) {
	t.Setenv("HEADS_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}
