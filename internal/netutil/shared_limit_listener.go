package netutil

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var errKeepaliveNotSupported = errors.New("keepalive not supported")

// Limiter is a pool of connection slots shared by every listener of the
// server. Use NewLimiter to create one.
type Limiter struct {
	sem        chan struct{}
	concurrent prometheus.Gauge
	waiting    prometheus.Gauge
}

// NewLimiter creates a Limiter allowing n connections at once and reports
// its state through the given gauges.
func NewLimiter(n int, maxConns, concurrent, waiting prometheus.Gauge) *Limiter {
	maxConns.Set(float64(n))

	return &Limiter{
		sem:        make(chan struct{}, n),
		concurrent: concurrent,
		waiting:    waiting,
	}
}

// SharedLimitListener returns a Listener that accepts a connection only
// once the shared limiter has a free slot. Adapted from golang.org/x/net/netutil.
func SharedLimitListener(listener net.Listener, limiter *Limiter) net.Listener {
	return &sharedLimitListener{
		Listener: listener,
		limiter:  limiter,
		done:     make(chan struct{}),
	}
}

type sharedLimitListener struct {
	net.Listener
	closeOnce sync.Once
	limiter   *Limiter
	done      chan struct{} // closed by Close
}

// acquire blocks until a slot is free. It returns false when the listener
// was closed while waiting.
func (l *sharedLimitListener) acquire() bool {
	l.limiter.waiting.Inc()
	defer l.limiter.waiting.Dec()

	select {
	case <-l.done:
		return false
	case l.limiter.sem <- struct{}{}:
		l.limiter.concurrent.Inc()
		return true
	}
}

func (l *sharedLimitListener) release() {
	<-l.limiter.sem
	l.limiter.concurrent.Dec()
}

func (l *sharedLimitListener) Accept() (net.Conn, error) {
	acquired := l.acquire()

	// a closed listener fails Accept right away
	c, err := l.Listener.Accept()
	if err != nil {
		if acquired {
			l.release()
		}
		return nil, err
	}

	tcpConn, _ := c.(*net.TCPConn)

	return &sharedLimitListenerConn{
		Conn:    c,
		tcpConn: tcpConn,
		release: l.release,
	}, nil
}

func (l *sharedLimitListener) Close() error {
	err := l.Listener.Close()
	l.closeOnce.Do(func() { close(l.done) })
	return err
}

type sharedLimitListenerConn struct {
	net.Conn
	tcpConn     *net.TCPConn
	releaseOnce sync.Once
	release     func()
}

func (c *sharedLimitListenerConn) Close() error {
	err := c.Conn.Close()
	c.releaseOnce.Do(c.release)
	return err
}

// SetKeepAlive lets the http server enable TCP keep-alive through the wrapper
func (c *sharedLimitListenerConn) SetKeepAlive(enabled bool) error {
	if c.tcpConn == nil {
		return errKeepaliveNotSupported
	}

	return c.tcpConn.SetKeepAlive(enabled)
}

func (c *sharedLimitListenerConn) SetKeepAlivePeriod(period time.Duration) error {
	if c.tcpConn == nil {
		return errKeepaliveNotSupported
	}

	return c.tcpConn.SetKeepAlivePeriod(period)
}
