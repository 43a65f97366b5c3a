//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the virtual camera demo with the sample configuration.
func (Run) Demo() error {
	fmt.Println("Run virtual camera demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "virtcam.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the unit tests. The platform package needs a display, so it is skipped.
func (Run) Tests() error {
	if _, err := executeCmd("go", withArgs("test", "./engine", "./engine/math/...", "./engine/core/...", "./engine/config/...", "./engine/containers/...",
		"./engine/renderer/...", "./engine/systems/...", "./testbed/..."), withStream()); err != nil {
		return err
	}
	return nil
}
