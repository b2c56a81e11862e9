// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrAlreadySeen              = ExistsError("already seen")
	ErrAlreadyVoted             = ExistsError("already voted for this height")
	ErrBanned                   = InvalidError("banned by proof of service")
	ErrBlockHashTooOld          = InvalidError("block hash is too old")
	ErrBlockNotFound            = NotFoundError("block not found")
	ErrCannotConnect            = ProcessError("cannot connect")
	ErrCertificateFileExists    = ExistsError("certificate file already exists")
	ErrChainBusy                = ProcessError("chain state is busy")
	ErrCoinNotFound             = NotFoundError("coin not found")
	ErrCoinbaseExceedsReward    = InvalidError("coinbase pays too much")
	ErrCollateralKeyMismatch    = InvalidError("collateral key does not match outpoint")
	ErrCollateralNotFound       = NotFoundError("collateral not found")
	ErrCollateralTooNew         = InvalidError("collateral has insufficient confirmations")
	ErrDatabaseIsNotSet         = ProcessError("database is not set")
	ErrDuplicateBroadcast       = ExistsError("broadcast has same signature time")
	ErrIdentityNotFound         = NotFoundError("identity not found")
	ErrInsufficientData         = NotFoundError("insufficient data")
	ErrInvalidAddress           = InvalidError("invalid network address")
	ErrInvalidBlockHeight       = InvalidError("invalid block height")
	ErrInvalidChain             = InvalidError("invalid chain")
	ErrInvalidCollateralAmount  = InvalidError("invalid collateral amount")
	ErrInvalidCount             = InvalidError("invalid count")
	ErrInvalidIPAddress         = InvalidError("invalid IP address")
	ErrInvalidKey               = InvalidError("invalid key")
	ErrInvalidKeySize           = InvalidError("public key has the wrong size")
	ErrInvalidListMode          = InvalidError("invalid list mode")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidNonce             = InvalidError("invalid nonce")
	ErrInvalidOutpoint          = InvalidError("invalid outpoint")
	ErrInvalidPort              = InvalidError("invalid port")
	ErrInvalidProtocolVersion   = InvalidError("invalid protocol version")
	ErrInvalidScriptSig         = InvalidError("input script is not empty")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrInvalidStage             = InvalidError("invalid synchronisation stage")
	ErrKeyFileExists            = ExistsError("key file already exists")
	ErrListRequestedTooRecently = InvalidError("list already requested recently")
	ErrMissingParameters        = InvalidError("missing parameters")
	ErrNoRealNode               = InvalidError("no real node found for address")
	ErrNodeNotEnabled           = InvalidError("node not enabled")
	ErrNodeNotFound             = NotFoundError("node not found")
	ErrNotAMasternode           = ProcessError("not running as a masternode")
	ErrNotInitialised           = NotFoundError("not initialised")
	ErrNotListening             = ProcessError("not accepting inbound connections")
	ErrNotRequested             = InvalidError("not requested")
	ErrNotSynchronised          = ProcessError("not synchronised")
	ErrOlderBroadcast           = InvalidError("broadcast is older than current")
	ErrOutOfRange               = InvalidError("out of range")
	ErrPeerProtocolTooOld       = InvalidError("peer protocol too old")
	ErrPingTooEarly             = InvalidError("ping arrived too early")
	ErrRankTooLow               = InvalidError("rank too low")
	ErrRateLimiting             = InvalidError("rate limiting")
	ErrRecentlyBroadcast        = InvalidError("node broadcast recently")
	ErrRequestFulfilled         = ExistsError("request already fulfilled")
	ErrSameOutpoints            = InvalidError("verification outpoints are the same")
	ErrSelfBroadcast            = ExistsError("broadcast belongs to the active self node")
	ErrSignatureFailed          = ProcessError("signing failed")
	ErrSignatureInFuture        = InvalidError("signature time too far in the future")
	ErrStateNewStartRequired    = InvalidError("node requires a new start")
	ErrStateUpdateRequired      = InvalidError("node requires a protocol update")
	ErrUnknownBlockHash         = NotFoundError("unknown block hash")
	ErrUnknownMessage           = InvalidError("unknown message")
	ErrVersionMismatch          = InvalidError("version mismatch")
	ErrWalletLocked             = ProcessError("wallet is locked")
	ErrWalletNotAvailable       = ProcessError("wallet is not available")
	ErrWrongPayment             = InvalidError("missing required payment")
	ErrWrongProtocolForSelfNode = ProcessError("wrong protocol version for self node")
	ErrWrongVerificationAddress = InvalidError("verification address does not match")
	ErrWrongVerificationHeight  = InvalidError("verification height does not match")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// Error - the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }

// IsTransient - errors where the same input may succeed later
func IsTransient(e error) bool {
	return e == ErrChainBusy || e == ErrCoinNotFound || e == ErrCollateralTooNew
}
