package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
)

func TestRunInit_WritesStarterConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "blogforge.yaml")

	require.NoError(t, RunInit(cfgPath, false))

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "source_dir:")
}

func TestRunInit_RefusesOverwriteWithoutForce(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "blogforge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("site: {}\n"), 0o644))

	err := RunInit(cfgPath, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, RunInit(cfgPath, true))
}

func TestLoadConfig_DefaultsWhenDefaultFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(&CLI{Config: "blogforge.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "content", cfg.Content.SourceDir)
}

func TestLoadConfig_ErrorsWhenExplicitFileMissing(t *testing.T) {
	_, err := LoadConfig(&CLI{Config: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestBuildCmd_EndToEnd(t *testing.T) {
	workDir := t.TempDir()
	sourceDir := filepath.Join(workDir, "content")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	post := "+++\ntitle = \"Hello\"\ndate = date(\"2024-05-01\")\nlayout = \"post\"\n+++\nBody.\n"
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "hello.md"), []byte(post), 0o644))

	cfgPath := filepath.Join(workDir, "blogforge.yaml")
	cfgYAML := "site:\n  title: Test\ncontent:\n  source_dir: " + sourceDir + "\nlayouts:\n  - post\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	outputDir := filepath.Join(workDir, "public")
	cmd := &BuildCmd{Output: outputDir}
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: cfgPath}))

	_, err := os.Stat(filepath.Join(outputDir, "blog", "hello", "index.html"))
	assert.NoError(t, err)
}
