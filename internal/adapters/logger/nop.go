package logger

import "github.com/mvives/go_corpus_tools/internal/ports"

// Nop is a logger that discards everything. Used in tests and by callers
// that want silent operation.
type Nop struct{}

// NewNop returns a no-op logger.
func NewNop() ports.Logger { return Nop{} }

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
