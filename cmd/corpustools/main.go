// Command corpustools prepares and scores a Catalan text corpus: it
// normalizes raw transcriptions, validates the file references of the
// consignas tables, and submits normalized texts to the evaluation API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
