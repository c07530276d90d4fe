// Command ankify converts flashcard text into cards on the command line,
// using the same parser as the API server.
package main

import (
	"fmt"
	"os"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ankify: %v\n", err)
		os.Exit(1)
	}
}
