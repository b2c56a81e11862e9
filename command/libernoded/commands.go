// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/mode"
	"github.com/libercoinproject/libercoin-old/payment"
	"github.com/libercoinproject/libercoin-old/registry"
	"github.com/libercoinproject/libercoin-old/rpc/certificate"
	"github.com/libercoinproject/libercoin-old/signer"
	"github.com/libercoinproject/libercoin-old/storage"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)
		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}
		err := certificate.Generate("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "genkey", "key":
		name := chain.Libercoin
		if len(arguments) >= 1 {
			name = arguments[0]
		}
		params, err := chain.Get(name)
		if nil != err {
			exitwithstatus.Message("error: chain: %q  error: %s", name, err)
		}
		wif, err := signer.NewKey(params.Net)
		if nil != err {
			exitwithstatus.Message("error: generate key: %s", err)
		}
		fmt.Printf("%s\n", wif)

	case "gen-config", "conf":
		fileName := getFilenameWithDirectory(arguments, configurationFilename)
		name := chain.Libercoin
		if len(arguments) >= 2 {
			name = arguments[1]
		}
		if err := generateConfiguration(fileName, name); nil != err {
			fmt.Printf("generate configuration: %q error: %s\n", fileName, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated configuration: %q\n", fileName)

	case "start", "run":
		return false // continue processing
	case "dump-registry", "registry", "dump-payments", "payments", "dump-meta", "meta":
		return false // defer processing until database is loaded
	case "config-test", "cfg", "decode", "gen-identity", "identity":
		return false
	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)        - display this message\n\n")
		fmt.Printf("  version                    (v)        - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)     - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                          and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  genkey [CHAIN]             (key)      - print a new operational private key\n")
		fmt.Printf("\n")

		fmt.Printf("  gen-config [DIR] [CHAIN]   (conf)     - create a configuration in: %q\n", "DIR/"+configurationFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-identity ALIAS IP:PORT HASH INDEX - add a libernode with a new key\n")
		fmt.Printf("                             (identity)   to the identities file\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)      - just run the program, same as no arguments\n")
		fmt.Printf("                                          for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)      - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  decode HEX                            - decode a packed broadcast\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-registry [FILE]       (registry) - saved libernodes as JSON to stdout/file\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-payments [FILE]       (payments) - saved payment tallies as JSON to stdout/file\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-meta [FILE]           (meta)     - database metadata as JSON to stdout/file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	case "decode":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing broadcast argument")
		}
		params, err := chain.Get(options.Chain)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		decoded, err := decodeBroadcast(strings.TrimSpace(arguments[0]), params)
		if nil != err {
			exitwithstatus.Message("decode error: %s", err)
		}
		printJSON(os.Stdout, decoded)

	case "gen-identity", "identity":
		params, err := chain.Get(options.Chain)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		identity, err := appendIdentity(options.Libernode.Identities, params, arguments)
		if nil != err {
			exitwithstatus.Message("identity error: %s", err)
		}
		fmt.Printf("added: %q to: %q\n", identity.Alias, options.Libernode.Identities)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the storage is initialised so these commands can read the saved state
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	output := "-"
	if len(arguments) > 0 {
		output = strings.TrimSpace(arguments[0])
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "dump-registry", "registry":
		data := storage.Raw(storage.Pool.Registry)
		if nil == data {
			exitwithstatus.Message("no saved registry")
		}
		nodes, err := registry.Dump(data)
		if nil != err {
			exitwithstatus.Message("registry error: %s", err)
		}
		writeOutput(log, output, dumpNodes(nodes, mode.Params()))

	case "dump-payments", "payments":
		data := storage.Raw(storage.Pool.Payments)
		if nil == data {
			exitwithstatus.Message("no saved payments")
		}
		votes, err := payment.Dump(data)
		if nil != err {
			exitwithstatus.Message("payments error: %s", err)
		}
		writeOutput(log, output, dumpVotes(votes, mode.Params()))

	case "dump-meta", "meta":
		items, err := dumpMeta(storage.Pool.Meta)
		if nil != err {
			exitwithstatus.Message("metadata error: %s", err)
		}
		writeOutput(log, output, items)

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

type decodedBroadcast struct {
	Hash           string `json:"hash"`
	Outpoint       string `json:"outpoint"`
	Address        string `json:"address"`
	Payee          string `json:"payee"`
	OperationalKey string `json:"operational_key"`
	Protocol       int32  `json:"protocol"`
	SigTime        int64  `json:"sig_time"`
	SignatureValid bool   `json:"signature_valid"`
}

func decodeBroadcast(s string, params *chain.Params) (*decodedBroadcast, error) {
	payload, err := hex.DecodeString(s)
	if nil != err {
		return nil, err
	}
	b, err := masternode.UnpackBroadcast(payload)
	if nil != err {
		return nil, err
	}
	_, err = b.CheckSignature(signer.New(signer.DefaultMagic))
	return &decodedBroadcast{
		Hash:           b.Hash().String(),
		Outpoint:       masternode.ShortString(b.Outpoint),
		Address:        b.Address.String(),
		Payee:          signer.PayeeAddress(signer.PayToKey(b.CollateralKey), params.Net),
		OperationalKey: signer.KeyIDOf(b.OperationalKey).String(),
		Protocol:       b.Protocol,
		SigTime:        b.SigTime,
		SignatureValid: nil == err,
	}, nil
}

type dumpedNode struct {
	Outpoint      string `json:"outpoint"`
	Address       string `json:"address"`
	Payee         string `json:"payee"`
	State         string `json:"state"`
	Protocol      int32  `json:"protocol"`
	SigTime       int64  `json:"sig_time"`
	LastPing      int64  `json:"last_ping"`
	LastPaidBlock int32  `json:"last_paid_block"`
	PoSeBanScore  int32  `json:"pose_ban_score"`
}

func dumpNodes(nodes []masternode.Info, params *chain.Params) []dumpedNode {
	result := make([]dumpedNode, 0, len(nodes))
	for _, info := range nodes {
		result = append(result, dumpedNode{
			Outpoint:      masternode.ShortString(info.Outpoint),
			Address:       info.Address.String(),
			Payee:         signer.PayeeAddress(info.Payee(), params.Net),
			State:         info.State.String(),
			Protocol:      info.Protocol,
			SigTime:       info.SigTime,
			LastPing:      info.LastPing,
			LastPaidBlock: info.LastPaidBlock,
			PoSeBanScore:  info.PoSeBanScore,
		})
	}
	return result
}

type dumpedVote struct {
	Height   int32  `json:"height"`
	Voter    string `json:"voter"`
	Payee    string `json:"payee"`
	Verified bool   `json:"verified"`
}

func dumpVotes(votes []payment.DumpedVote, params *chain.Params) []dumpedVote {
	result := make([]dumpedVote, 0, len(votes))
	for _, v := range votes {
		result = append(result, dumpedVote{
			Height:   v.Vote.Height,
			Voter:    masternode.ShortString(v.Vote.Voter),
			Payee:    signer.PayeeAddress(v.Vote.Payee, params.Net),
			Verified: v.Verified,
		})
	}
	return result
}

type dumpedMeta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// every key of a pool, printable values as text and the rest as hex
func dumpMeta(pool *storage.PoolHandle) ([]dumpedMeta, error) {
	result := []dumpedMeta{}
	err := pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		v := string(value)
		if !isPrintable(v) {
			v = hex.EncodeToString(value)
		}
		result = append(result, dumpedMeta{Key: string(key), Value: v})
		return nil
	})
	return result, err
}

func isPrintable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func writeOutput(log *logger.L, output string, item interface{}) {
	fd := os.Stdout
	if "" != output && "-" != output {
		f, err := os.Create(output)
		if nil != err {
			exitwithstatus.Message("error: creating: %q error: %s", output, err)
		}
		defer f.Close()
		fd = f
		log.Infof("writing: %q", output)
	}
	printJSON(fd, item)
}

func printJSON(w io.Writer, item interface{}) {
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		exitwithstatus.Message("error: JSON: %s", err)
	}
	fmt.Fprintf(w, "%s\n", b)
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
