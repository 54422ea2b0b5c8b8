package main

import (
	"context"
	"fmt"
	"os"
)

// Version information (set by GoReleaser)
var (
	version = "0.1.0"
	_       = "none"    // commit - set by GoReleaser but not used
	_       = "unknown" // date - set by GoReleaser but not used
)

func main() {
	app := newApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
