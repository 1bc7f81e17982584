package graphics

import "fmt"

// ResourceKind names the kind of file a ResourceLoadError refers to.
type ResourceKind string

const (
	ResourceShader  ResourceKind = "shader"
	ResourceTexture ResourceKind = "texture"
	ResourceMesh    ResourceKind = "mesh"
)

// ResourceLoadError reports a missing or undecodable shader, texture or mesh
// file. It is fatal at startup and never retried.
type ResourceLoadError struct {
	Kind ResourceKind
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Kind, e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// CompileLinkError reports a shader stage that failed to compile or a program
// that failed to link. Stage is "vertex", "fragment" or "link".
type CompileLinkError struct {
	Program string
	Stage   string
	Log     string
}

func (e *CompileLinkError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("failed to link program %q: %s", e.Program, e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader of program %q: %s", e.Stage, e.Program, e.Log)
}

// LookupError reports use of a texture key that was never loaded. It marks a
// programming error rather than a runtime condition.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("texture %q was never loaded", e.Key)
}
