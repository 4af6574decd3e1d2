package raster

import (
	"errors"
	"sync"
)

// ErrNoMemory is returned by Pool.Get when the buffer would exceed the pool budget.
var ErrNoMemory = errors.New("raster: buffer budget exhausted")

// Pool hands out transient framebuffers within a byte budget. A zero or
// negative budget means unlimited.
type Pool struct {
	lock        sync.Mutex
	budget      int
	inUse       int
	outstanding int
	peak        int
}

func NewPool(budget int) *Pool {
	return &Pool{budget: budget}
}

// Get allocates a width×height framebuffer, or fails with ErrNoMemory.
func (p *Pool) Get(width, height int) (*Framebuffer, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	size := width * height * 2
	if p.budget > 0 && p.inUse+size > p.budget {
		return nil, ErrNoMemory
	}
	p.inUse += size
	p.outstanding++
	if p.outstanding > p.peak {
		p.peak = p.outstanding
	}
	return NewFramebuffer(width, height), nil
}

// Put releases fb. It must not be used afterwards.
func (p *Pool) Put(fb *Framebuffer) {
	if fb == nil {
		return
	}
	p.lock.Lock()
	defer p.lock.Unlock()

	p.inUse -= fb.Size()
	p.outstanding--
	fb.Pix = nil
}

// Outstanding returns the number of buffers not yet released.
func (p *Pool) Outstanding() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.outstanding
}

// Peak returns the highest number of buffers held at the same time.
func (p *Pool) Peak() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.peak
}

// InUse returns the number of bytes currently handed out.
func (p *Pool) InUse() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.inUse
}
