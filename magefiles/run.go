//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs facecube with the sample config.
func (Run) Showcase() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run facecube...")
	if _, err := executeCmd(binaryPath(), withArgs("-config", "facecube.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
