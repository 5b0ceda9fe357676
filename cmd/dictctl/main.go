// Command dictctl exercises the dictionary pipeline from the terminal:
// extracting words from phrases, looking words up and running a one-shot
// sync against the backend.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
