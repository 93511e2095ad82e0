package filesystems_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, ".env")
	lfs := filesystems.NewLocalFS()

	assert.False(t, filesystems.Exists(lfs, name))
	assert.False(t, filesystems.Exists(lfs, dir))

	require.NoError(t, lfs.WriteFile(name, []byte("A=1\n")))
	assert.True(t, filesystems.Exists(lfs, name))

	content, err := lfs.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(content))

	info, err := lfs.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLocalFS_WriteFile_KeepsExistingMode(t *testing.T) {
	name := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(name, []byte("A=1\n"), 0o644))

	lfs := filesystems.NewLocalFS()
	require.NoError(t, lfs.WriteFile(name, []byte("A=2\n")))

	info, err := lfs.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
