package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/trophyfit-cli/internal/dataset"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "CoC.csv", c.DataPath)
	assert.Equal(t, "text", c.Format)
	assert.Equal(t, "info", c.LogLevel)
	assert.True(t, c.Outliers)
	assert.Equal(t, 3.5, c.OutlierThreshold)
	assert.Equal(t, dataset.DefaultSchema, c.Columns.Schema())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	c.DataPath = "/data/players.csv"
	c.Columns.Donations = 13
	require.NoError(t, Save(c, ""))

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/players.csv", got.DataPath)
	assert.Equal(t, 13, got.Columns.Schema().Donations)
}

func TestEnvOverridesNestedColumns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TROPHYFIT_COLUMNS_ATTACK_WINS", "2")
	t.Setenv("TROPHYFIT_FORMAT", "markdown")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Columns.AttackWins)
	assert.Equal(t, "markdown", c.Format)
}

func TestLoadExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("sample_rows: 7\ncolumns:\n  trophies: 3\n"), 0o644))
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 7, c.SampleRows)
	assert.Equal(t, 3, c.Columns.Trophies)
	assert.Equal(t, 5, c.Columns.AttackWins)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsNegativeColumns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TROPHYFIT_COLUMNS_TROPHIES", "-1")
	_, err := Load("")
	assert.Error(t, err)
}
