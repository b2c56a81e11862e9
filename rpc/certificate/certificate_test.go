// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/rpc/certificate"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func TestGenerateAndLoad(t *testing.T) {
	dir := t.TempDir()
	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	err := certificate.Generate("test", cer, key, []string{"127.0.0.1"})
	assert.Nil(t, err, "wrong Generate")

	tlsConfig, fingerprint, err := certificate.Load(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "wrong Load")

	certPEM, _ := os.ReadFile(cer)
	keyPEM, _ := os.ReadFile(key)
	pair, _ := tls.X509KeyPair(certPEM, keyPEM)

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")

	info, err := os.Stat(key)
	assert.Nil(t, err, "key missing")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "key readable by others")
}

func TestGenerateNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	assert.Nil(t, certificate.Generate("test", cer, key, nil), "wrong Generate")
	assert.Equal(t, fault.ErrCertificateFileExists, certificate.Generate("test", cer, key, nil), "certificate overwritten")

	assert.Nil(t, os.Remove(cer), "remove error")
	assert.Equal(t, fault.ErrKeyFileExists, certificate.Generate("test", cer, key, nil), "key overwritten")
}

func TestGetInvalid(t *testing.T) {
	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "junk", "junk")
	assert.NotNil(t, err, "junk accepted")

	dir := t.TempDir()
	_, _, err = certificate.Load(logger.New(fixtures.LogCategory), "test", filepath.Join(dir, "none.crt"), filepath.Join(dir, "none.key"))
	assert.NotNil(t, err, "missing file accepted")
}
