// Command wave runs animation scene files offline.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/wave/cmd/wave/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
