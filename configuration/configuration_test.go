// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/configuration"
	"github.com/libercoinproject/libercoin-old/fault"
)

type listen struct {
	Listen  []string `gluamapper:"listen"`
	Maximum int      `gluamapper:"maximum_connections"`
}

type config struct {
	Chain     string            `gluamapper:"chain"`
	Directory string            `gluamapper:"data_directory"`
	Enable    bool              `gluamapper:"enable"`
	RPC       listen            `gluamapper:"rpc"`
	Levels    map[string]string `gluamapper:"levels"`
}

func write(t *testing.T, text string) string {
	name := filepath.Join(t.TempDir(), "libernoded.conf")
	err := os.WriteFile(name, []byte(text), 0600)
	assert.Nil(t, err, "write configuration error")
	return name
}

func TestParseConfigurationFile(t *testing.T) {
	name := write(t, `
local M = {}
M.chain = "testing"
M.data_directory = arg[0]
M.enable = true
M.rpc = {
    listen = { "127.0.0.1:2130", "[::1]:2130" },
    maximum_connections = 5 * 10,
}
M.levels = { main = "info", DEFAULT = "error" }
M.extra = suffix
return M
`)

	c := config{}
	err := configuration.ParseConfigurationFile(name, &c, map[string]string{"suffix": "x"})
	assert.Nil(t, err, "parse error")
	assert.Equal(t, "testing", c.Chain, "wrong chain")
	assert.Equal(t, name, c.Directory, "arg[0] not the file name")
	assert.True(t, c.Enable, "wrong flag")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, c.RPC.Listen, "wrong listen")
	assert.Equal(t, 50, c.RPC.Maximum, "wrong maximum")
	assert.Equal(t, "info", c.Levels["main"], "wrong level")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	c := config{}

	err := configuration.ParseConfigurationFile(filepath.Join(t.TempDir(), "missing.conf"), &c, nil)
	assert.NotNil(t, err, "missing file accepted")

	err = configuration.ParseConfigurationFile(write(t, "return {"), &c, nil)
	assert.NotNil(t, err, "syntax error accepted")

	err = configuration.ParseConfigurationFile(write(t, "return 42"), &c, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "non table accepted")
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/var/lib/libernode/data", configuration.EnsureAbsolute("/var/lib/libernode", "data"), "relative not joined")
	assert.Equal(t, "/etc/rpc.key", configuration.EnsureAbsolute("/var/lib/libernode", "/etc/rpc.key"), "absolute changed")
	assert.Equal(t, "/var/lib/log", configuration.EnsureAbsolute("/var/lib/libernode", "../log"), "not cleaned")
}
