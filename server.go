package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"gitlab.com/forked-pages/forked-pages/internal/netutil"
)

type keepAliveListener struct {
	net.Listener
	period time.Duration
}

type keepAliveSetter interface {
	SetKeepAlive(bool) error
	SetKeepAlivePeriod(time.Duration) error
}

type listenerConfig struct {
	isProxyV2   bool
	skipLimiter bool
}

func (ln *keepAliveListener) Accept() (net.Conn, error) {
	conn, err := ln.Listener.Accept()
	if err != nil {
		return nil, err
	}

	if kc, ok := conn.(keepAliveSetter); ok {
		if err := kc.SetKeepAlive(true); err != nil {
			log.WithError(err).Debug("enabling keep-alive")
		}

		if ln.period > 0 {
			if err := kc.SetKeepAlivePeriod(ln.period); err != nil {
				log.WithError(err).Debug("setting keep-alive period")
			}
		}
	}

	return conn, nil
}

func (a *theApp) listen(addr string, config listenerConfig) (net.Listener, error) {
	// keep-alive is handled by keepAliveListener so it still applies below the limiter
	lc := net.ListenConfig{KeepAlive: -1}

	l, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %q: %w", addr, err)
	}

	if a.limiter != nil && !config.skipLimiter {
		l = netutil.SharedLimitListener(l, a.limiter)
	}

	if a.config.Server.ListenKeepAlive >= 0 {
		l = &keepAliveListener{Listener: l, period: a.config.Server.ListenKeepAlive}
	}

	if config.isProxyV2 {
		l = &proxyproto.Listener{
			Listener: l,
			Policy: func(upstream net.Addr) (proxyproto.Policy, error) {
				return proxyproto.REQUIRE, nil
			},
		}
	}

	return l, nil
}

func (a *theApp) newServer(name, addr string, handler http.Handler, config listenerConfig) (namedServer, error) {
	l, err := a.listen(addr, config)
	if err != nil {
		return namedServer{}, err
	}

	if a.config.General.HTTP2 {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Handler:           handler,
		ReadTimeout:       a.config.Server.ReadTimeout,
		ReadHeaderTimeout: a.config.Server.ReadHeaderTimeout,
		WriteTimeout:      a.config.Server.WriteTimeout,
	}

	return namedServer{name: name, server: server, listener: l}, nil
}
