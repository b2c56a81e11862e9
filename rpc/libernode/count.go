// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libernode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/rpc/ratelimit"
	"github.com/libercoinproject/libercoin-old/signer"
)

// CountArguments - empty arguments for count request
type CountArguments struct{}

// CountReply - record totals
type CountReply struct {
	Total    int `json:"total"`
	Protocol int `json:"protocol"`
	Enabled  int `json:"enabled"`
	Qualify  int `json:"qualify"`
}

// Count - totals of the registry
func (l *Libernode) Count(_ *CountArguments, reply *CountReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	s := l.services
	reply.Total = s.Nodes.CountNodes(0)
	reply.Protocol = s.Nodes.CountNodes(-1)
	reply.Enabled = s.Nodes.CountEnabled(-1)

	_, qualify, _ := s.Elector.NextInQueueForPayment(s.Chain.Height()+1, true)
	reply.Qualify = qualify
	return nil
}

// ---

// list modes
const (
	ListActiveSeconds = "activeseconds"
	ListAddress       = "addr"
	ListFull          = "full"
	ListLastPaidBlock = "lastpaidblock"
	ListLastPaidTime  = "lastpaidtime"
	ListLastSeen      = "lastseen"
	ListPayee         = "payee"
	ListProtocol      = "protocol"
	ListRank          = "rank"
	ListStatus        = "status"
)

// ListArguments - mode and optional filter
type ListArguments struct {
	Mode   string `json:"mode"`
	Filter string `json:"filter"`
}

// ListEntry - one record
type ListEntry struct {
	Outpoint string `json:"outpoint"`
	Value    string `json:"value"`
}

// ListReply - records ordered by outpoint, or by rank
type ListReply struct {
	Nodes []ListEntry `json:"nodes"`
}

// List - one field of every record
//
// the filter is a case insensitive substring of the outpoint or the value
func (l *Libernode) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	mode := strings.ToLower(arguments.Mode)
	if "" == mode {
		mode = ListStatus
	}
	filter := strings.ToLower(arguments.Filter)

	s := l.services
	reply.Nodes = []ListEntry{}

	if ListRank == mode {
		for _, r := range s.Elector.Ranks(s.Chain.Height(), s.Ledger.MinProtocol()) {
			l.appendEntry(reply, filter, r.Info, strconv.Itoa(r.Rank))
		}
		return nil
	}

	infos := s.Nodes.Infos()
	sort.Slice(infos, func(i, j int) bool {
		return masternode.CompareOutpoints(infos[i].Outpoint, infos[j].Outpoint) < 0
	})

	for _, info := range infos {
		value, err := l.field(mode, info)
		if nil != err {
			return err
		}
		l.appendEntry(reply, filter, info, value)
	}
	return nil
}

func (l *Libernode) appendEntry(reply *ListReply, filter string, info masternode.Info, value string) {
	outpoint := masternode.ShortString(info.Outpoint)
	if "" != filter &&
		!strings.Contains(strings.ToLower(outpoint), filter) &&
		!strings.Contains(strings.ToLower(value), filter) {
		return
	}
	reply.Nodes = append(reply.Nodes, ListEntry{
		Outpoint: outpoint,
		Value:    value,
	})
}

func (l *Libernode) field(mode string, info masternode.Info) (string, error) {
	net := l.services.Params.Net
	switch mode {
	case ListActiveSeconds:
		return strconv.FormatInt(info.LastPing-info.SigTime, 10), nil
	case ListAddress:
		return info.Address.String(), nil
	case ListFull:
		return fmt.Sprintf("%18s %6d %s %10d %6d %10d %s",
			info.State,
			info.Protocol,
			signer.PayeeAddress(info.Payee(), net),
			info.LastPing,
			info.LastPing-info.SigTime,
			info.LastPaidTime,
			info.Address,
		), nil
	case ListLastPaidBlock:
		return strconv.FormatInt(int64(info.LastPaidBlock), 10), nil
	case ListLastPaidTime:
		return strconv.FormatInt(info.LastPaidTime, 10), nil
	case ListLastSeen:
		return strconv.FormatInt(info.LastPing, 10), nil
	case ListPayee:
		return signer.PayeeAddress(info.Payee(), net), nil
	case ListProtocol:
		return strconv.FormatInt(int64(info.Protocol), 10), nil
	case ListStatus:
		return info.State.String(), nil
	default:
		return "", fault.ErrInvalidListMode
	}
}

// ---

// WinnerArguments - empty arguments for winner request
type WinnerArguments struct{}

// Candidate - payment queue head at one height
type Candidate struct {
	Height    int32  `json:"height"`
	Outpoint  string `json:"outpoint"`
	Address   string `json:"address"`
	Payee     string `json:"payee"`
	Protocol  int32  `json:"protocol"`
	LastSeen  int64  `json:"lastseen"`
	ActiveFor string `json:"activeseconds"`
}

// WinnerReply - current and predicted payee
type WinnerReply struct {
	Current   *Candidate `json:"current"`
	Predicted *Candidate `json:"predicted"`
}

// offset of the predicted winner from the tip
const predictedOffset = 10

// Winner - queue head for the next block and ten blocks ahead
func (l *Libernode) Winner(_ *WinnerArguments, reply *WinnerReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	tip := l.services.Chain.Height()
	reply.Current = l.candidate(tip + 1)
	reply.Predicted = l.candidate(tip + predictedOffset)
	if nil == reply.Current && nil == reply.Predicted {
		return fault.ErrNodeNotFound
	}
	return nil
}

func (l *Libernode) candidate(height int32) *Candidate {
	info, _, ok := l.services.Elector.NextInQueueForPayment(height, true)
	if !ok {
		return nil
	}
	return &Candidate{
		Height:    height,
		Outpoint:  masternode.ShortString(info.Outpoint),
		Address:   info.Address.String(),
		Payee:     signer.PayeeAddress(info.Payee(), l.services.Params.Net),
		Protocol:  info.Protocol,
		LastSeen:  info.LastPing,
		ActiveFor: (time.Duration(info.LastPing-info.SigTime) * time.Second).String(),
	}
}

// ---

// limits of the winners listing
const (
	defaultWinnersCount = 10
	maximumWinnersCount = 2000
	winnersAhead        = 20
)

// WinnersArguments - number of past blocks and optional filter
type WinnersArguments struct {
	Count  int    `json:"count"`
	Filter string `json:"filter"`
}

// WinnersEntry - required payees at one height
type WinnersEntry struct {
	Height int32  `json:"height"`
	Payees string `json:"payees"`
}

// WinnersReply - heights tip-count to tip+20
type WinnersReply struct {
	Winners []WinnersEntry `json:"winners"`
}

// Winners - voted payees around the tip
func (l *Libernode) Winners(arguments *WinnersArguments, reply *WinnersReply) error {
	count := arguments.Count
	if 0 == count {
		count = defaultWinnersCount
	}
	if err := ratelimit.Entries(l.Limiter, count, maximumWinnersCount); nil != err {
		return err
	}

	tip := l.services.Chain.Height()
	if tip < 0 {
		return fault.ErrNotSynchronised
	}

	reply.Winners = []WinnersEntry{}
	for h := tip - int32(count); h < tip+winnersAhead; h += 1 {
		if h < 0 {
			continue
		}
		payees := l.services.Ledger.RequiredPaymentsString(h)
		if "" != arguments.Filter && !strings.Contains(payees, arguments.Filter) {
			continue
		}
		reply.Winners = append(reply.Winners, WinnersEntry{
			Height: h,
			Payees: payees,
		})
	}
	return nil
}
