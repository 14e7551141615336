//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Unit runs every package test.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Race runs the concurrent packages under the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./internal/loader/...", "./cmd/..."),
		withEnv("CGO_ENABLED=1"), withStream())
	return err
}

// Cover writes a coverage profile to coverage.out.
func (Test) Cover() error {
	_, err := executeCmd("go", withArgs("test", "-coverprofile=coverage.out", "./..."), withStream())
	return err
}

// Vet runs go vet over the module.
func (Test) Vet() error {
	mg.Deps(Build.Tidy)
	_, err := executeCmd("go", withArgs("vet", "./..."))
	return err
}
