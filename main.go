// main.go is the chartloc entry point. It only injects the version and
// executes the cobra root command; all behavior lives under cmd and
// internal where it stays testable.
package main

import (
	"fmt"
	"os"

	"chartloc/cmd"
)

// version defaults to dev. Release builds override it with
// -ldflags "-X main.version=vX.Y.Z".
var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "chartloc error: %v\n", err)
		os.Exit(1)
	}
}
