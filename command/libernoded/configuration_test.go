// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/nodeconf"
	"github.com/libercoinproject/libercoin-old/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func writeConfiguration(t *testing.T, text string) string {
	name := filepath.Join(t.TempDir(), "libernoded.conf")
	err := os.WriteFile(name, []byte(text), 0600)
	assert.NoError(t, err, "write error")
	return name
}

func TestGetConfiguration(t *testing.T) {
	name := writeConfiguration(t, `
return {
    data_directory = ".",
    chain = "Testing",
    libernode = {
        enable = true,
        external = "93.184.216.34:19999",
    },
    client_rpc = {
        listen = { "127.0.0.1:2130" },
    },
    metrics = {
        listen = "127.0.0.1:2131",
    },
}
`)
	options, err := getConfiguration(name)
	assert.NoError(t, err, "configuration error")

	directory := filepath.Dir(name)
	assert.Equal(t, chain.Testing, options.Chain, "chain not lower cased")
	assert.Equal(t, filepath.Join(directory, "data", defaultTestingDatabase), options.Database.Name, "wrong database")
	assert.Equal(t, filepath.Join(directory, defaultIdentitiesFile), options.Libernode.Identities, "identities not absolute")
	assert.Equal(t, filepath.Join(directory, defaultCertificateFile), options.ClientRPC.Certificate, "certificate not absolute")
	assert.Equal(t, int64(defaultRPCClients), options.ClientRPC.MaximumConnections, "default connections lost")
	assert.Equal(t, []string{"127.0.0.1:2130"}, options.ClientRPC.Listen, "wrong listen")
	assert.Equal(t, "127.0.0.1:2131", options.Metrics.Listen, "wrong metrics listen")
	assert.True(t, options.Payments.Enforce, "enforcement off by default")
	assert.True(t, options.Libernode.Enable, "libernode not enabled")

	info, err := os.Stat(filepath.Join(directory, defaultLogDirectory))
	assert.NoError(t, err, "log directory not created")
	assert.True(t, info.IsDir(), "log directory is a file")
}

func TestGetConfigurationErrors(t *testing.T) {
	items := []struct {
		name string
		text string
	}{
		{"missing data directory", `return { chain = "local" }`},
		{"unknown chain", `return { data_directory = ".", chain = "nowhere" }`},
		{"database path", `return { data_directory = ".", database = { name = "a/b.leveldb" } }`},
	}
	for _, item := range items {
		name := writeConfiguration(t, item.text)
		_, err := getConfiguration(name)
		assert.Error(t, err, item.name)
	}
}

func TestRuntimeConfig(t *testing.T) {
	params := fixtures.Params()
	wif, err := btcutil.NewWIF(fixtures.Key(1), params.Net, true)
	assert.NoError(t, err, "wif error")

	options := &Configuration{}
	config, err := runtimeConfig(options, params)
	assert.NoError(t, err, "disabled libernode error")
	assert.Nil(t, config.Libernode.OperationalKey, "key without libernode")

	options.Libernode = LibernodeType{
		Enable:     true,
		PrivateKey: wif.String(),
		External:   "93.184.216.34:19999",
	}
	config, err = runtimeConfig(options, params)
	assert.NoError(t, err, "runtime config error")
	assert.Equal(t, fixtures.Key(1).PubKey(), config.Libernode.OperationalKey.PubKey(), "wrong key")
	assert.Equal(t, "93.184.216.34:19999", config.Libernode.External.String(), "wrong external")

	options.Libernode.External = "not an address"
	_, err = runtimeConfig(options, params)
	assert.Error(t, err, "bad external accepted")

	options.Libernode.PrivateKey = "junk"
	_, err = runtimeConfig(options, params)
	assert.Error(t, err, "bad key accepted")
}

func TestStandaloneLink(t *testing.T) {
	link := newStandalone(fixtures.Address(1, 19999))

	address, ok := link.LocalAddress()
	assert.True(t, ok, "no local address")
	assert.Equal(t, fixtures.Address(1, 19999), address, "wrong local address")
	assert.True(t, link.IsListening(), "not listening")
	assert.Equal(t, 0, len(link.Peers()), "peers present")

	_, err := link.Connect(address)
	assert.Error(t, err, "connect succeeded")
}

func TestGenerateConfiguration(t *testing.T) {
	name := filepath.Join(t.TempDir(), configurationFilename)

	err := generateConfiguration(name, chain.Testing)
	assert.NoError(t, err, "generate error")
	err = generateConfiguration(name, chain.Testing)
	assert.Error(t, err, "configuration overwritten")

	options, err := getConfiguration(name)
	assert.NoError(t, err, "generated configuration not readable")
	assert.Equal(t, chain.Testing, options.Chain, "wrong chain")
	assert.False(t, options.Libernode.Enable, "libernode enabled")
	assert.Equal(t, []string{"127.0.0.1:2130"}, options.ClientRPC.Listen, "wrong listen")

	options.Libernode.Enable = true
	config, err := runtimeConfig(options, fixtures.Params())
	assert.NoError(t, err, "generated key rejected")
	assert.NotNil(t, config.Libernode.OperationalKey, "no key")

	err = generateConfiguration(filepath.Join(t.TempDir(), configurationFilename), "nowhere")
	assert.Error(t, err, "unknown chain accepted")
}

func TestAppendIdentity(t *testing.T) {
	name := filepath.Join(t.TempDir(), defaultIdentitiesFile)
	hash := fixtures.Outpoint(1).Hash.String()

	identity, err := appendIdentity(name, fixtures.Params(), []string{"mn1", "93.184.216.34:19999", hash, "0"})
	assert.NoError(t, err, "append error")
	assert.Equal(t, "mn1", identity.Alias, "wrong alias")
	_, err = appendIdentity(name, fixtures.Params(), []string{"mn2", "93.184.216.35:19999", hash, "1"})
	assert.NoError(t, err, "second append error")

	identities, err := nodeconf.New(name, fixtures.Params().Net)
	assert.NoError(t, err, "identities not readable")
	assert.Equal(t, 2, len(identities.Entries()), "wrong identity count")
	e, ok := identities.Get("mn2")
	assert.True(t, ok, "second identity missing")
	assert.Equal(t, uint32(1), e.Outpoint.Index, "wrong index")

	items := [][]string{
		{"mn3", "93.184.216.34:19999", hash},
		{"mn3", "nowhere", hash, "0"},
		{"mn3", "93.184.216.34:19999", "zz", "0"},
		{"mn3", "93.184.216.34:19999", hash, "-1"},
	}
	for _, item := range items {
		_, err := appendIdentity(name, fixtures.Params(), item)
		assert.Error(t, err, "invalid identity accepted: %v", item)
	}
}

func TestDumpMeta(t *testing.T) {
	name := filepath.Join(t.TempDir(), "meta.leveldb")
	_, err := storage.Initialise(name, storage.ReadWrite)
	assert.NoError(t, err, "initialise error")
	defer storage.Finalise()

	err = storage.CheckChain(chain.Testing)
	assert.NoError(t, err, "chain error")
	storage.Pool.Meta.Put([]byte("binary"), []byte{0, 1, 2})

	items, err := dumpMeta(storage.Pool.Meta)
	assert.NoError(t, err, "dump error")

	values := map[string]string{}
	for _, item := range items {
		values[item.Key] = item.Value
	}
	assert.Equal(t, chain.Testing, values["chain"], "wrong chain")
	assert.Equal(t, "000102", values["binary"], "binary value not hex")
}
