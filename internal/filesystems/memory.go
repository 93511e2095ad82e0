package filesystems

import (
	"io/fs"
	"path"
	"sort"
	"time"
)

// MemoryFS implements FileSystem for in-memory filesystem operations
type MemoryFS struct {
	files  map[string][]byte
	dirs   map[string]bool
	failOn map[string]error
}

// NewMemoryFS creates a new MemoryFS instance
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		failOn: make(map[string]error),
	}
}

// AddFile adds a file to the memory filesystem
func (mfs *MemoryFS) AddFile(name string, content []byte) {
	mfs.files[path.Clean(name)] = content
	// Ensure parent directories exist
	dir := path.Dir(name)
	for dir != "." && dir != "/" {
		mfs.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

// AddDir adds a directory to the memory filesystem
func (mfs *MemoryFS) AddDir(name string) {
	mfs.dirs[path.Clean(name)] = true
	dir := path.Dir(name)
	for dir != "." && dir != "/" {
		mfs.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

// FailWrites makes every later WriteFile to name return err.
func (mfs *MemoryFS) FailWrites(name string, err error) {
	mfs.failOn[path.Clean(name)] = err
}

// Files returns the names of all files, sorted.
func (mfs *MemoryFS) Files() []string {
	names := make([]string, 0, len(mfs.files))
	for name := range mfs.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (mfs *MemoryFS) ReadFile(name string) ([]byte, error) {
	cleanName := path.Clean(name)
	content, exists := mfs.files[cleanName]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (mfs *MemoryFS) WriteFile(name string, data []byte) error {
	cleanName := path.Clean(name)
	if err, ok := mfs.failOn[cleanName]; ok {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	if mfs.dirs[cleanName] {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	content := make([]byte, len(data))
	copy(content, data)
	mfs.AddFile(cleanName, content)
	return nil
}

func (mfs *MemoryFS) Stat(name string) (FileInfo, error) {
	cleanName := path.Clean(name)
	if mfs.dirs[cleanName] {
		return &memoryFileInfo{
			name:    path.Base(cleanName),
			mode:    fs.ModeDir | 0755,
			modTime: time.Now(),
			isDir:   true,
		}, nil
	}

	content, exists := mfs.files[cleanName]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{
		name:    path.Base(cleanName),
		size:    int64(len(content)),
		mode:    0600,
		modTime: time.Now(),
	}, nil
}

// memoryFileInfo implements FileInfo for memory filesystem
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (fi *memoryFileInfo) Name() string {
	return fi.name
}

func (fi *memoryFileInfo) Size() int64 {
	return fi.size
}

func (fi *memoryFileInfo) Mode() fs.FileMode {
	return fi.mode
}

func (fi *memoryFileInfo) ModTime() time.Time {
	return fi.modTime
}

func (fi *memoryFileInfo) IsDir() bool {
	return fi.isDir
}

func (fi *memoryFileInfo) Sys() interface{} {
	return nil
}
