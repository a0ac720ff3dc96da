// Package static serves files from a root folder.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// IndexFile is served for "/".
const IndexFile = "tasks.html"

// ErrNotFound is returned for missing files, directories, non-regular files
// and paths that would leave the root.
var ErrNotFound = errors.New("static: file not found")

// File is a resolved file held fully in memory.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Resolver maps request paths to files under a root filesystem.
type Resolver struct {
	root fs.FS
}

// NewResolver returns a resolver over root.
func NewResolver(root fs.FS) *Resolver {
	return &Resolver{root: root}
}

// NewDirResolver returns a resolver over the folder dir on disk.
func NewDirResolver(dir string) *Resolver {
	return NewResolver(os.DirFS(dir))
}

// Resolve reads the file that requestPath points at.
func (r *Resolver) Resolve(requestPath string) (*File, error) {
	if requestPath == "/" {
		requestPath = "/" + IndexFile
	}

	name := strings.TrimPrefix(requestPath, "/")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, requestPath)
	}

	info, err := fs.Stat(r.root, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, requestPath)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, requestPath)
	}

	body, err := fs.ReadFile(r.root, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return &File{
		Name:        name,
		ContentType: ContentType(name),
		Body:        body,
	}, nil
}
