package symconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symconfig"
)

func TestDefaultConfig(t *testing.T) {
	cfg := symconfig.Default()
	assert.Equal(t, 5, cfg.Depth)
	assert.True(t, cfg.CheckSmallerDepths)
	assert.True(t, cfg.Simplify)
	assert.Equal(t, symconfig.Reference, cfg.Backend)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxUnrollingDepth)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := symconfig.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, symconfig.Default(), cfg)
}

func TestLoadOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("depth: 3\nbackend: bdd\ntimeout: 2s\n"), 0o644))

	cfg, err := symconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Depth)
	assert.Equal(t, symconfig.BDD, cfg.Backend)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.True(t, cfg.Simplify, "fields absent from the file keep Default()'s value")
}

func TestApplyOptions(t *testing.T) {
	cfg := symconfig.Default().Apply(symconfig.WithDepth(2), symconfig.WithTimeout(time.Second))
	assert.Equal(t, 2, cfg.Depth)
	assert.Equal(t, time.Second, cfg.Timeout)
}
