// Command phasecache enumerates lattice momenta, builds momentum phase
// caches for one rank of a distributed lattice and inspects the files it
// writes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "phasecache:", err)
		os.Exit(1)
	}
}
