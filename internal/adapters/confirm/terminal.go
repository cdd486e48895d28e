// Package confirm provides operator confirmation prompts.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal asks yes/no questions over an input/output pair, normally stdin
// and stdout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a terminal confirmer.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm prints the question and reads one line. Only "y" or "yes" count as
// consent; a read error counts as refusal.
func (t *Terminal) Confirm(question string) bool {
	fmt.Fprintf(t.out, "%s (y/n): ", question)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Static always answers the same way. Used for forced runs and in tests.
type Static bool

// Confirm returns the fixed answer.
func (s Static) Confirm(string) bool { return bool(s) }
