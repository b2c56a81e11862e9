// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

const (
	/**** Configuration template ****/
	ConfigurationTemplate = `-- libernoded.conf  -*- mode: lua -*-

local M = {}

M.data_directory = "."
M.pidfile = "libernoded.pid"
M.chain = "{{.Chain}}"

M.libernode = {
    enable = {{.Enable}},
    private_key = "{{.PrivateKey}}",
    external = "{{.External}}",
    identities = "libernode.conf",
}

M.payments = {
    enforce = true,
    pay_updated_nodes = false,
}

M.host = {
    host = "{{.Host}}",
    user = "",
    password = "",
}

M.client_rpc = {
    maximum_connections = 50,
    bandwidth = 25000000,
    listen = {
{{- range .Listen}}
        "{{.}}",
{{- end}}
    },
    certificate = "rpc.crt",
    private_key = "rpc.key",
}

M.metrics = {
    listen = "",
}

M.logging = {
    size = 1048576,
    count = 10,
    console = false,
    levels = {
        DEFAULT = "info",
    },
}

return M
`

	/**** Identity template ****/
	// one line of the identities file
	IdentityTemplate = `{{.Alias}} {{.Address}} {{.PrivateKey}} {{.Hash}} {{.Index}}
`
)

// Configuration - values substituted into ConfigurationTemplate
type Configuration struct {
	Chain      string
	Enable     bool
	PrivateKey string
	External   string
	Host       string
	Listen     []string
}

// Identity - values substituted into IdentityTemplate
type Identity struct {
	Alias      string
	Address    string
	PrivateKey string
	Hash       string
	Index      uint32
}
