package filesystems

import (
	"io/fs"
	"time"
)

// FileSystem abstracts the whole-file operations envman performs. Every
// operation reads a file completely, transforms it in memory and writes it
// back in one call.
type FileSystem interface {
	// ReadFile reads the named file and returns its contents
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces the contents of the named file, creating it if needed
	WriteFile(name string, data []byte) error

	// Stat returns file information for the named file
	Stat(name string) (FileInfo, error)
}

// FileInfo provides information about a file
type FileInfo interface {
	Name() string
	Size() int64
	Mode() fs.FileMode
	ModTime() time.Time
	IsDir() bool
	Sys() interface{}
}

// Exists reports whether name refers to an existing regular file.
func Exists(filesystem FileSystem, name string) bool {
	info, err := filesystem.Stat(name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
