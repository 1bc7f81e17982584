//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the cube scene with cubescene.toml.
func (Run) Scene() error {
	fmt.Println("Run cubescene...")
	_, err := executeCmd("go", withArgs("run", "./cmd/cubescene"), withStream())
	return err
}

// Runs the cube scene with shader hot reload and debug logging.
func (Run) Dev() error {
	fmt.Println("Run cubescene (dev)...")
	_, err := executeCmd("go", withArgs("run", "./cmd/cubescene"), withEnv("CUBESCENE_CONFIG", "cubescene.dev.toml"), withStream())
	return err
}

// Runs the single triangle demo.
func (Run) Triangle() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/triangle"), withStream())
	return err
}

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
