package graphics

import (
	"fmt"
	"io/fs"
	"os"
	"path"
)

// ShaderSource holds the two stages of a named program.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// ShaderLibrary reads <name>.vert and <name>.frag from a file system.
type ShaderLibrary struct {
	fsys fs.FS
	root string
}

// NewShaderLibrary returns a library rooted at fsys.
func NewShaderLibrary(fsys fs.FS) *ShaderLibrary {
	return &ShaderLibrary{fsys: fsys, root: "."}
}

// NewShaderDir returns a library reading from a directory on disk.
func NewShaderDir(dir string) *ShaderLibrary {
	return &ShaderLibrary{fsys: os.DirFS(dir), root: dir}
}

// Load reads both stages of the named program.
func (l *ShaderLibrary) Load(name string) (ShaderSource, error) {
	vertex, err := l.read(name + ".vert")
	if err != nil {
		return ShaderSource{}, err
	}
	fragment, err := l.read(name + ".frag")
	if err != nil {
		return ShaderSource{}, err
	}
	return ShaderSource{Vertex: vertex, Fragment: fragment}, nil
}

func (l *ShaderLibrary) read(file string) (string, error) {
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return "", &ResourceLoadError{Kind: ResourceShader, Path: path.Join(l.root, file), Err: err}
	}
	if len(data) == 0 {
		return "", &ResourceLoadError{Kind: ResourceShader, Path: path.Join(l.root, file), Err: fmt.Errorf("empty shader source")}
	}
	return string(data), nil
}
