package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ghandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/correlation"
	"golang.org/x/sync/errgroup"

	"gitlab.com/forked-pages/forked-pages/internal/config"
	"gitlab.com/forked-pages/forked-pages/internal/customheaders"
	"gitlab.com/forked-pages/forked-pages/internal/devheaders"
	"gitlab.com/forked-pages/forked-pages/internal/forked"
	"gitlab.com/forked-pages/forked-pages/internal/handlers"
	"gitlab.com/forked-pages/forked-pages/internal/healthcheck"
	"gitlab.com/forked-pages/forked-pages/internal/httpfs"
	"gitlab.com/forked-pages/forked-pages/internal/logging"
	"gitlab.com/forked-pages/forked-pages/internal/netutil"
	"gitlab.com/forked-pages/forked-pages/internal/ratelimiter"
	"gitlab.com/forked-pages/forked-pages/internal/rejectmethods"
	"gitlab.com/forked-pages/forked-pages/internal/urilimiter"
	"gitlab.com/forked-pages/forked-pages/metrics"
)

type theApp struct {
	config      *config.Config
	fs          *httpfs.FileSystem
	rateLimiter *ratelimiter.RateLimiter
	limiter     *netutil.Limiter
}

func newApp(cfg *config.Config) (*theApp, error) {
	fs, err := httpfs.NewFileSystem(cfg.General.RootDir)
	if err != nil {
		return nil, fmt.Errorf("opening pages-root: %w", err)
	}

	a := &theApp{config: cfg, fs: fs}

	if cfg.RateLimit.SourceIPLimitPerSecond > 0 {
		a.rateLimiter = ratelimiter.New(
			ratelimiter.WithSourceIPLimitPerSecond(cfg.RateLimit.SourceIPLimitPerSecond),
			ratelimiter.WithSourceIPBurstSize(cfg.RateLimit.SourceIPBurst),
		)
	}

	if cfg.General.MaxConns > 0 {
		a.limiter = netutil.NewLimiter(
			cfg.General.MaxConns,
			metrics.LimitListenerMaxConns,
			metrics.LimitListenerConcurrentConns,
			metrics.LimitListenerWaitingConns,
		)
	}

	return a, nil
}

// serveFileOrNotFound is the innermost handler: the prefix handling over the
// static file server.
func (a *theApp) serveFileOrNotFound() http.Handler {
	handler := forked.NewHandler(httpfs.NewFileServer(a.fs))

	return devheaders.NewMiddleware(handler)
}

// buildHandlerPipeline returns the handler chain. Middleware is applied in
// reverse order, so the last one wrapped sees the request first.
func (a *theApp) buildHandlerPipeline() (http.Handler, error) {
	handler := a.serveFileOrNotFound()

	handler, err := customheaders.NewMiddleware(handler, a.config.General.CustomHeaders)
	if err != nil {
		return nil, fmt.Errorf("parsing custom headers: %w", err)
	}

	handler = handlers.CorsHandler(a.config, handler)
	handler = healthcheck.NewMiddleware(handler, a.config.General.StatusPath)

	if a.rateLimiter != nil {
		handler = a.rateLimiter.SourceIPLimiter(handler)
	}

	handler = urilimiter.NewMiddleware(handler, a.config.General.MaxURILength)
	handler = rejectmethods.NewMiddleware(handler)
	handler = handlers.Instrument(handler)

	handler, err = logging.BasicAccessLogger(handler, a.config.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("configuring access logger: %w", err)
	}

	handler = correlation.InjectCorrelationID(handler,
		correlation.WithPropagation(),
		correlation.WithSetResponseHeader(),
	)

	return ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(log.StandardLogger()),
		ghandlers.PrintRecoveryStack(true),
	)(handler), nil
}

// Run serves every configured listener until a termination signal arrives
// or one of the servers fails.
func (a *theApp) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *theApp) run(ctx context.Context) error {
	handler, err := a.buildHandlerPipeline()
	if err != nil {
		return err
	}

	if a.rateLimiter != nil {
		defer a.rateLimiter.Stop()
	}

	servers, err := a.createServers(handler)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		s := s
		g.Go(func() error {
			log.WithFields(log.Fields{
				"listener": s.listener.Addr().String(),
				"type":     s.name,
			}).Info("Listening")

			if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving %s on %s: %w", s.name, s.listener.Addr(), err)
			}

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		var shutdownErr error
		for _, s := range servers {
			if err := s.server.Shutdown(shutdownCtx); err != nil {
				shutdownErr = fmt.Errorf("shutting down %s: %w", s.name, err)
			}
		}

		return shutdownErr
	})

	return g.Wait()
}

type namedServer struct {
	name     string
	server   *http.Server
	listener net.Listener
}

func (a *theApp) createServers(handler http.Handler) ([]namedServer, error) {
	var servers []namedServer

	closeAll := func() {
		for _, s := range servers {
			s.listener.Close()
		}
	}

	for _, addr := range a.config.Listeners.HTTP {
		s, err := a.newServer("http", addr, handler, listenerConfig{})
		if err != nil {
			closeAll()
			return nil, err
		}
		servers = append(servers, s)
	}

	for _, addr := range a.config.Listeners.ProxyV2 {
		s, err := a.newServer("http-proxyv2", addr, handler, listenerConfig{isProxyV2: true})
		if err != nil {
			closeAll()
			return nil, err
		}
		servers = append(servers, s)
	}

	if addr := a.config.Metrics.Address; addr != "" {
		s, err := a.newServer("metrics", addr, promhttp.Handler(), listenerConfig{skipLimiter: true})
		if err != nil {
			closeAll()
			return nil, err
		}
		servers = append(servers, s)
	}

	return servers, nil
}
