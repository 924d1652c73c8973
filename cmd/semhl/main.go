// semhl colours C and C++ source by what each token means to the compiler.
// Single binary: one-shot highlighting, watch mode and a socket daemon.
package main

import (
	"os"

	"github.com/corey/semhl/cmd/semhl/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
