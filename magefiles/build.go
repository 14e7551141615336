//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const binDir = "bin"

type Build mg.Namespace

// CLI builds the objmesh binary into ./bin.
func (Build) CLI() error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	out := filepath.Join(binDir, "objmesh")
	_, err := executeCmd("go", withArgs("build", "-o", out, "./cmd/objmesh"), withStream())
	return err
}

// Tidy runs go mod tidy.
func (Build) Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}

// Clean removes build output.
func (Build) Clean() error {
	return os.RemoveAll(binDir)
}
