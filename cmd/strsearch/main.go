// strsearch compares exact substring search algorithms.
// KMP, Boyer-Moore, and Rabin-Karp are measured against strings.Index and regexp.
package main

import (
	"fmt"
	"os"

	"github.com/corey/strsearch/cmd/strsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}
