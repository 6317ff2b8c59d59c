package docmerge

import (
	"errors"
	"io"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent LibreOffice processes to limit memory.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for soffice child processes.
	cpuDivisor = 2
)

// RendererFactory creates one renderer instance for the pool.
type RendererFactory func() (DocxRenderer, error)

// RenderPool manages a pool of DocxRenderer instances so a batch of Word
// inputs can render concurrently before the (strictly ordered) merge.
// Renderers are created lazily on first acquire.
type RenderPool struct {
	size      int
	factory   RendererFactory
	renderers []DocxRenderer
	sem       chan DocxRenderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRenderPool creates a pool with capacity for n renderer instances built
// by factory. Renderers are created lazily when acquired.
func NewRenderPool(n int, factory RendererFactory) *RenderPool {
	if n < 1 {
		n = 1
	}

	return &RenderPool{
		size:      n,
		factory:   factory,
		renderers: make([]DocxRenderer, 0, n),
		sem:       make(chan DocxRenderer, n),
	}
}

// Acquire gets a renderer from the pool, creating one if capacity allows.
// Blocks if all renderers are in use.
func (p *RenderPool) Acquire() (DocxRenderer, error) {
	// Try to get an existing renderer (non-blocking)
	select {
	case r := <-p.sem:
		return r, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create the renderer outside the lock
		r, err := p.factory()
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()

		return r, nil
	}
	p.mu.Unlock()

	// All renderers created, wait for one to be released
	return <-p.sem, nil
}

// Release returns a renderer to the pool. The lock is held across the send
// so a concurrent Close cannot close the channel in between; the send never
// blocks because the channel has capacity for every created renderer.
func (p *RenderPool) Release(r DocxRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.sem <- r
}

// Close shuts the pool down. Renderers implementing io.Closer are closed;
// returns an aggregated error if several fail.
func (p *RenderPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RenderPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs in containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
