package server

import "context"

// Shutdown stops accepting, closes the listener and waits until queued and
// in-flight connections have been served or ctx is done. Connections are
// never cut short; a ctx that expires only stops the waiting.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return nil
	}
	s.closed.Store(true)
	s.running.Store(false)
	l := s.listener
	s.mu.Unlock()

	var closeErr error
	if l != nil {
		closeErr = l.Close()
	}

	s.pool.stop()

	done := make(chan struct{})
	go func() {
		s.pool.wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("server stopped")
		return closeErr
	case <-ctx.Done():
		s.logger.Warn("shutdown timed out waiting for connections",
			Field{"active", s.metrics.ActiveConnections.Load()},
		)
		return ctx.Err()
	}
}
