// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/activation"
	"github.com/libercoinproject/libercoin-old/blockchain/rpcview"
	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/configuration"
	"github.com/libercoinproject/libercoin-old/metrics"
	"github.com/libercoinproject/libercoin-old/node"
	"github.com/libercoinproject/libercoin-old/payment"
	"github.com/libercoinproject/libercoin-old/rpc/listeners"
	"github.com/libercoinproject/libercoin-old/signer"
)

const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"
	defaultIdentitiesFile  = "libernode.conf"

	defaultLevelDBDirectory  = "data"
	defaultLibercoinDatabase = chain.Libercoin + ".leveldb"
	defaultTestingDatabase   = chain.Testing + ".leveldb"
	defaultLocalDatabase     = chain.Local + ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "libernoded.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients   = 10
	defaultRPCBandwidth = 25000000
)

type LoglevelMap map[string]string

var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LibernodeType - settings for running as a libernode
type LibernodeType struct {
	Enable     bool   `gluamapper:"enable" json:"enable"`
	PrivateKey string `gluamapper:"private_key" json:"private_key"`
	External   string `gluamapper:"external" json:"external"`
	Identities string `gluamapper:"identities" json:"identities"`
}

type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Libernode LibernodeType           `gluamapper:"libernode" json:"libernode"`
	Payments  payment.Config          `gluamapper:"payments" json:"payments"`
	Host      rpcview.Configuration   `gluamapper:"host" json:"host"`
	ClientRPC listeners.Configuration `gluamapper:"client_rpc" json:"client_rpc"`
	Metrics   metrics.Configuration   `gluamapper:"metrics" json:"metrics"`
	Logging   logger.Configuration    `gluamapper:"logging" json:"logging"`
}

func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Libercoin,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLibercoinDatabase,
		},

		Libernode: LibernodeType{
			Identities: defaultIdentitiesFile,
		},

		Payments: payment.Config{
			Enforce: true,
		},

		ClientRPC: listeners.Configuration{
			MaximumConnections: defaultRPCClients,
			Bandwidth:          defaultRPCBandwidth,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	variables := map[string]string{
		"data_directory": dataDirectory,
	}
	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	if options.Database.Name == defaultLibercoinDatabase {
		switch options.Chain {
		case chain.Libercoin:
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		default:
			return nil, fmt.Errorf("Chain: %s no default database setting", options.Chain)
		}
	}

	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
	}

	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Libernode.Identities,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = configuration.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = configuration.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// runtimeConfig - decode the key and external address for the runtime
func runtimeConfig(options *Configuration, params *chain.Params) (node.Config, error) {
	config := node.Config{
		Payments: options.Payments,
	}
	if !options.Libernode.Enable {
		return config, nil
	}

	key, _, err := signer.ParseWIF(options.Libernode.PrivateKey, params.Net)
	if nil != err {
		return config, fmt.Errorf("libernode private_key: %s", err)
	}
	config.Libernode = activation.Config{
		OperationalKey: key,
	}

	if "" != options.Libernode.External {
		external, err := netip.ParseAddrPort(options.Libernode.External)
		if nil != err {
			return config, fmt.Errorf("libernode external: %q  error: %s", options.Libernode.External, err)
		}
		if err := params.CheckPort(external.Port()); nil != err {
			return config, fmt.Errorf("libernode external: %q  error: %s", options.Libernode.External, err)
		}
		config.Libernode.External = external
	}
	return config, nil
}
