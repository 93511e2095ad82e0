package filesystems_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS_AddFile(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile(".env", []byte("PORT=8000\n"))

	result, err := mfs.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, "PORT=8000\n", string(result))
}

func TestMemoryFS_AddFile_CreatesParentDirs(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile("config/prod/.env", []byte("content"))

	info, err := mfs.Stat("config/prod")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.False(t, filesystems.Exists(mfs, "config/prod"))
	assert.True(t, filesystems.Exists(mfs, "config/prod/.env"))
}

func TestMemoryFS_ReadFile_NotFound(t *testing.T) {
	mfs := filesystems.NewMemoryFS()

	_, err := mfs.ReadFile("nonexistent.env")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFS_WriteFile(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile(".env", []byte("OLD=1\n"))

	require.NoError(t, mfs.WriteFile(".env", []byte("NEW=2\n")))
	require.NoError(t, mfs.WriteFile("out/.env", []byte("X=3\n")))

	content, err := mfs.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, "NEW=2\n", string(content))
	assert.Equal(t, []string{".env", "out/.env"}, mfs.Files())

	info, err := mfs.Stat("out/.env")
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size())
	assert.Equal(t, ".env", info.Name())
}

func TestMemoryFS_WriteFile_Failure(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddDir("dir")
	mfs.FailWrites("locked.env", fs.ErrPermission)

	err := mfs.WriteFile("locked.env", []byte("A=1\n"))
	assert.True(t, errors.Is(err, fs.ErrPermission))

	err = mfs.WriteFile("dir", []byte("A=1\n"))
	assert.Error(t, err)
}

func TestMemoryFS_ReadFile_ReturnsCopy(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile(".env", []byte("A=1"))

	content, err := mfs.ReadFile(".env")
	require.NoError(t, err)
	content[0] = 'B'

	again, err := mfs.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, "A=1", string(again))
}
