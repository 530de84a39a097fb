package parallel

// Future is the handle for one submitted work item.
//
// A Future is completed exactly once, either by the worker that ran the item
// or by the pool when it rejected the submission.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// complete records the result and releases waiters. Must be called once.
func (f *Future) complete(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed when the work item has finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the work item has finished and returns its error.
func (f *Future) Wait() error {
	<-f.done
	return f.err
}
