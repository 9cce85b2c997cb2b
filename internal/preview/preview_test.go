package preview

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogforge/internal/config"
)

func TestResolveSourceDir_ErrorsWhenMissingDir(t *testing.T) {
	cfg := config.Default()
	cfg.Content.SourceDir = filepath.Join(t.TempDir(), "does-not-exist")
	_, err := resolveSourceDir(cfg)
	require.Error(t, err)
}

func TestResolveSourceDir_ReturnsAbsoluteDir(t *testing.T) {
	cfg := config.Default()
	cfg.Content.SourceDir = t.TempDir()

	abs, err := resolveSourceDir(cfg)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs))
}

func TestBuildStatus_Transitions(t *testing.T) {
	bs := &buildStatus{}

	hasError, _, hasGoodBuild := bs.getStatus()
	require.False(t, hasError)
	require.False(t, hasGoodBuild)

	bs.setError(errors.New("build exploded"))
	hasError, err, hasGoodBuild := bs.getStatus()
	require.True(t, hasError)
	require.Error(t, err)
	require.False(t, hasGoodBuild)

	bs.setSuccess()
	hasError, _, hasGoodBuild = bs.getStatus()
	require.False(t, hasError)
	require.True(t, hasGoodBuild)
}

func TestShouldIgnoreEvent(t *testing.T) {
	require.True(t, shouldIgnoreEvent("/tmp/.hidden.md"))
	require.True(t, shouldIgnoreEvent("/tmp/#foo#"))
	require.True(t, shouldIgnoreEvent("/tmp/foo.swp"))
	require.True(t, shouldIgnoreEvent("/tmp/.DS_Store"))
	require.False(t, shouldIgnoreEvent("/tmp/visible.md"))
}
