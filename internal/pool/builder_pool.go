package pool

import (
	"strings"
	"sync"
)

// BuilderPool reuses strings.Builder instances across normalization calls so
// that rebuilding document text does not allocate a fresh buffer per file.
type BuilderPool struct {
	pool sync.Pool
}

// NewBuilderPool creates a new strings.Builder pool.
func NewBuilderPool() *BuilderPool {
	return &BuilderPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(strings.Builder)
			},
		},
	}
}

// Get retrieves a builder from the pool or creates a new one.
func (p *BuilderPool) Get() *strings.Builder {
	return p.pool.Get().(*strings.Builder)
}

// Put resets the builder and returns it to the pool for reuse.
func (p *BuilderPool) Put(sb *strings.Builder) {
	sb.Reset()
	p.pool.Put(sb)
}
