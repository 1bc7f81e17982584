//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds both executables into bin/.
func (Build) Binaries() error {
	for _, name := range []string{"cubescene", "triangle"} {
		out := filepath.Join("bin", name)
		if _, err := executeCmd("go", withArgs("build", "-o", out, "./cmd/"+name), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Validates every GLSL source under shaders/ with glslangValidator.
func (Build) Shaders() error {
	return validateShaders()
}

func validateShaders() error {
	sources, err := shaderSources()
	if err != nil {
		return err
	}
	for _, src := range sources {
		if _, err := executeCmd("glslangValidator", withArgs(src)); err != nil {
			return err
		}
	}
	return nil
}
