package filesystems

import (
	"os"
)

// newFileMode is used when WriteFile creates a file. Env files routinely hold
// credentials, so they are not world readable. Existing files keep their mode.
const newFileMode os.FileMode = 0o600

// LocalFS implements FileSystem for local filesystem access
type LocalFS struct{}

// NewLocalFS creates a new LocalFS instance
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

func (lfs *LocalFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (lfs *LocalFS) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, newFileMode)
}

func (lfs *LocalFS) Stat(name string) (FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	return info, nil
}
