// Command fftcheck validates and exercises FFT kernels under serial,
// shared-memory, distributed and hybrid execution models.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fftcheck:", err)
		os.Exit(1)
	}
}
