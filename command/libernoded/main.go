// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/background"
	"github.com/libercoinproject/libercoin-old/blockchain/rpcview"
	"github.com/libercoinproject/libercoin-old/clock"
	"github.com/libercoinproject/libercoin-old/counter"
	"github.com/libercoinproject/libercoin-old/metrics"
	"github.com/libercoinproject/libercoin-old/mode"
	"github.com/libercoinproject/libercoin-old/node"
	"github.com/libercoinproject/libercoin-old/nodeconf"
	"github.com/libercoinproject/libercoin-old/rpc/certificate"
	"github.com/libercoinproject/libercoin-old/rpc/listeners"
	"github.com/libercoinproject/libercoin-old/rpc/server"
	"github.com/libercoinproject/libercoin-old/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	params := mode.Params()
	log.Infof("chain: %s  test mode: %v", mode.ChainName(), mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	config, err := runtimeConfig(theConfiguration, params)
	if nil != err {
		log.Criticalf("libernode configuration error: %s", err)
		exitwithstatus.Message("libernode configuration error: %s", err)
	}

	// start the data storage
	log.Info("initialise storage")
	_, err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	err = storage.CheckChain(mode.ChainName())
	if nil != err {
		log.Criticalf("storage chain error: %s", err)
		exitwithstatus.Message("storage chain error: %s", err)
	}

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration) {
		return
	}

	// chain state from the full node
	log.Infof("host: %s", theConfiguration.Host.Host)
	view, err := rpcview.New(&theConfiguration.Host)
	if nil != err {
		log.Criticalf("host connection error: %s", err)
		exitwithstatus.Message("host connection error: %s", err)
	}
	defer view.Shutdown()

	link := newStandalone(config.Libernode.External)
	rt := node.New(view, params, clock.System{}, link, nil, config)

	if saved, ok := storage.LastSaved(); ok {
		log.Infof("restoring state saved at: %s", saved.UTC().Format(time.RFC3339))
	}
	err = rt.Restore()
	if nil != err {
		log.Criticalf("restore error: %s", err)
		exitwithstatus.Message("restore error: %s", err)
	}
	defer func() {
		if err := rt.Save(); nil != err {
			log.Errorf("save error: %s", err)
		}
	}()

	processes := rt.Processes(rt.Persist)
	processes = append(processes, background.Every(node.TipInterval, func() {
		rt.FollowTip()
	}))

	// local libernode identities for the start commands
	var identities *nodeconf.Identities
	if "" != theConfiguration.Libernode.Identities {
		identities, err = nodeconf.New(theConfiguration.Libernode.Identities, params.Net)
		if nil != err {
			log.Criticalf("identities: %q  error: %s", theConfiguration.Libernode.Identities, err)
			exitwithstatus.Message("identities: %q  error: %s", theConfiguration.Libernode.Identities, err)
		}
		watcher, err := nodeconf.NewWatcher(identities)
		if nil != err {
			log.Criticalf("identities watcher error: %s", err)
			exitwithstatus.Message("identities watcher error: %s", err)
		}
		processes = append(processes, watcher)
	}

	// gauges
	gauges := metrics.New(metrics.Sources{
		Nodes:  rt.Registry,
		Ledger: rt.Ledger,
		Sync:   rt.Sync,
		SelfState: func() int {
			if !rt.Self.IsLibernode() {
				return -1
			}
			return int(rt.Self.State())
		},
	})
	metricsServer, err := metrics.NewServer(&theConfiguration.Metrics, gauges)
	if nil != err {
		log.Criticalf("metrics initialise error: %s", err)
		exitwithstatus.Message("metrics initialise error: %s", err)
	}
	processes = append(processes, metricsServer)

	// client RPC
	if len(theConfiguration.ClientRPC.Listen) > 0 {
		rpcLog := logger.New("rpc")
		tlsConfig, fingerprint, err := certificate.Load(rpcLog, "client_rpc", theConfiguration.ClientRPC.Certificate, theConfiguration.ClientRPC.PrivateKey)
		if nil != err {
			log.Criticalf("rpc certificate error: %s", err)
			exitwithstatus.Message("rpc certificate error: %s", err)
		}
		count := counter.Counter{}
		rpcServer := server.Create(rpcLog, version, &count, rt, identities)
		listener, err := listeners.New(&theConfiguration.ClientRPC, rpcLog, &count, rpcServer, tlsConfig, fingerprint)
		if nil != err {
			log.Criticalf("rpc initialise error: %s", err)
			exitwithstatus.Message("rpc initialise error: %s", err)
		}
		err = listener.Serve()
		if nil != err {
			log.Criticalf("rpc serve error: %s", err)
			exitwithstatus.Message("rpc serve error: %s", err)
		}
		defer listener.Close()
	}

	mode.Set(mode.Normal)
	running := background.Start(processes, nil)
	defer running.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
