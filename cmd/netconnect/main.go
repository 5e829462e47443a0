package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCommand().Execute(); err != nil {
		// An interrupted watch already logged its shutdown; don't repeat it.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "netconnect: %v\n", err)
		}
		return 1
	}
	return 0
}
