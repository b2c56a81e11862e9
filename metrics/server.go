// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RefreshInterval - how often the gauges are read
const RefreshInterval = 10 * time.Second

// Configuration - metrics endpoint
type Configuration struct {
	// empty to disable the endpoint
	Listen string `gluamapper:"listen" json:"listen"`
}

// Handler - the /metrics page
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Server - background process serving /metrics and refreshing the gauges
type Server struct {
	log      *logger.L
	metrics  *Metrics
	listener net.Listener
}

// NewServer - bind the listen address now so errors are reported at start up
func NewServer(configuration *Configuration, m *Metrics) (*Server, error) {
	log := logger.New("metrics")
	var listener net.Listener
	if "" != configuration.Listen {
		l, err := net.Listen("tcp", configuration.Listen)
		if nil != err {
			log.Errorf("listen: %s  error: %s", configuration.Listen, err)
			return nil, err
		}
		listener = l
	}
	return &Server{
		log:      log,
		metrics:  m,
		listener: listener,
	}, nil
}

// Addr - bound address, nil when disabled
func (s *Server) Addr() net.Addr {
	if nil == s.listener {
		return nil
	}
	return s.listener.Addr()
}

// Run - background process
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	var server *http.Server
	if nil != s.listener {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metrics.Handler())
		server = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			s.log.Infof("serving: %s", s.listener.Addr())
			if err := server.Serve(s.listener); nil != err && http.ErrServerClosed != err {
				s.log.Errorf("serve error: %s", err)
			}
		}()
	}

	s.metrics.Refresh()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(RefreshInterval):
			s.metrics.Refresh()
		}
	}

	if nil != server {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = server.Shutdown(ctx)
		cancel()
	}
	s.log.Info("stopped")
}
