package server

import (
	"net"
	"sync"
)

// pool serves connections on a fixed number of goroutines. Submitted
// connections queue without bound, so the accept loop never waits on a
// handler.
type pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []net.Conn
	stopped bool

	serve func(net.Conn)
	wg    sync.WaitGroup
}

func newPool(workers int, serve func(net.Conn)) *pool {
	p := &pool{serve: serve}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// submit queues conn. It returns false once the pool is stopped.
func (p *pool) submit(conn net.Conn) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return false
	}
	p.queue = append(p.queue, conn)
	p.cond.Signal()
	return true
}

// stop refuses further submissions. Queued connections are still served.
func (p *pool) stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// wait blocks until every worker has drained the queue and exited.
func (p *pool) wait() {
	p.wg.Wait()
}

func (p *pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		conn := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.serve(conn)
	}
}
