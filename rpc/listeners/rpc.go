// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/counter"
	"github.com/libercoinproject/libercoin-old/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
	minBandwidth       = 1000000 // 1Mbps
)

// Configuration - configuration file data for RPC setup
type Configuration struct {
	MaximumConnections int64    `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64  `gluamapper:"bandwidth" json:"bandwidth"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Listener - TLS JSON-RPC listener on one or more addresses
type Listener struct {
	sync.Mutex
	log            *logger.L
	listeners      []net.Listener
	count          *counter.Counter
	server         *rpc.Server
	maxConnections int64
	tlsConfig      *tls.Config
	ipType         []string
	listen         []string
}

// New - validate the configuration
func New(
	configuration *Configuration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (*Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}
	if configuration.Bandwidth <= minBandwidth {
		log.Errorf("invalid %s bandwidth: %.0f bps < 1Mbps", logName, configuration.Bandwidth)
		return nil, fault.ErrMissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.ErrMissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	listen := append([]string(nil), configuration.Listen...)
	ipType, err := parseListenAddress(listen, log)
	if nil != err {
		return nil, err
	}

	return &Listener{
		log:            log,
		count:          count,
		server:         server,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		ipType:         ipType,
		listen:         listen,
	}, nil
}

// Serve - open every address and accept in the background
func (l *Listener) Serve() error {
	l.Lock()
	defer l.Unlock()

	for i, listen := range l.listen {
		l.log.Infof("starting RPC server: %s", listen)
		listener, err := tls.Listen(l.ipType[i], listen, l.tlsConfig)
		if nil != err {
			l.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		l.listeners = append(l.listeners, listener)

		go l.accept(listener)
	}
	return nil
}

// Addrs - bound addresses, valid after Serve
func (l *Listener) Addrs() []net.Addr {
	l.Lock()
	defer l.Unlock()
	addrs := make([]net.Addr, 0, len(l.listeners))
	for _, listener := range l.listeners {
		addrs = append(addrs, listener.Addr())
	}
	return addrs
}

// Close - stop accepting, open connections finish their requests
func (l *Listener) Close() {
	l.Lock()
	defer l.Unlock()
	for _, listener := range l.listeners {
		_ = listener.Close()
	}
	l.listeners = nil
}

func (l *Listener) accept(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if nil != err {
			l.log.Infof("rpc accept terminated: %s", err)
			break
		}
		if !l.count.Acquire(l.maxConnections) {
			l.log.Warnf("connection limit reached, rejecting: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			l.server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
			l.count.Decrement()
		}()
	}
}

// "*:PORT" is rewritten in place to "[::]:PORT"
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("rpc server listen: %q  error: %s", listen, err)
			return nil, fault.ErrInvalidIPAddress
		}

		switch {
		case "*" == host:
			// assumes this will listen on tcp4 and tcp6
			addrs[i] = net.JoinHostPort("::", port)
			host = "::"
			parsed[i] = "tcp"
		case strings.Contains(host, ":"):
			parsed[i] = "tcp6"
		default:
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			err := fault.ErrInvalidIPAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
