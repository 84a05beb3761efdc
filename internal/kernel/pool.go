package kernel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ipakernel/internal/audio"
	"ipakernel/internal/compare"
	"ipakernel/internal/kernelerr"
)

// Pool bounds the number of concurrent Kernel.Run calls using a buffered
// channel plus select/time.After, the same shape a single native call
// would use to bound itself, generalized from "bound one call" to "bound N
// concurrent evaluations." Kernels themselves are not
// safe for concurrent Run calls against the same instance (§5: plugins are
// owned exclusively by one kernel, calls must be serialized), so Pool also
// serializes access to the wrapped Kernel with a mutex held around each
// Kernel.Run call.
type Pool struct {
	k       *Kernel
	tokens  chan struct{}
	timeout time.Duration
	runMu   sync.Mutex
}

// NewPool wraps k with a semaphore of the given size, optionally bounding
// each Run call with timeout (zero disables the per-call timeout).
func NewPool(k *Kernel, size int, timeout time.Duration) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		k:       k,
		tokens:  make(chan struct{}, size),
		timeout: timeout,
	}
}

// Run acquires a slot, runs one evaluation, and releases the slot. It
// honors ctx cancellation both while waiting for a slot and while the
// evaluation is in flight.
func (p *Pool) Run(ctx context.Context, h audio.Handle, text, lang string) (*compare.Result, error) {
	select {
	case p.tokens <- struct{}{}:
	case <-ctx.Done():
		return nil, kernelerr.Wrap(kernelerr.Cancelled, "kernel pool: cancelled waiting for a free slot", ctx.Err())
	}
	defer func() { <-p.tokens }()

	runCtx := ctx
	var cancel context.CancelFunc
	if p.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	type res struct {
		result *compare.Result
		err    error
	}
	ch := make(chan res, 1)
	go func() {
		p.runMu.Lock()
		result, err := p.k.Run(runCtx, h, text, lang)
		p.runMu.Unlock()
		ch <- res{result: result, err: err}
	}()

	select {
	case out := <-ch:
		return out.result, out.err
	case <-runCtx.Done():
		return nil, kernelerr.Wrap(kernelerr.Cancelled, fmt.Sprintf("kernel pool: evaluation cancelled or timed out after %v", p.timeout), runCtx.Err())
	}
}
