package main

import (
	"fmt"
	"os"
)

// blake3_merkle computes BLAKE3 hashes of files, together with the
// hashes of the fixed size blocks of which they consist. Block hashes
// can be stored in a database, so that subsequent runs can report
// which blocks of a file changed.
func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
