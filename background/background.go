// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"sync"
	"time"
)

// Process - a long running task that returns when shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a running set of processes
type T struct {
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {
	register := &T{
		shutdown: make(chan struct{}),
	}

	for _, p := range processes {
		register.wg.Add(1)
		go func(p Process) {
			defer register.wg.Done()
			p.Run(args, register.shutdown)
		}(p)
	}
	return register
}

// Stop - signal all processes and wait for them to return
func (t *T) Stop() {
	close(t.shutdown)
	t.wg.Wait()
}

// Periodic - a process that calls a function at a fixed interval
type Periodic struct {
	Interval time.Duration
	Tick     func()
}

// Every - create a periodic process
func Every(interval time.Duration, tick func()) *Periodic {
	return &Periodic{
		Interval: interval,
		Tick:     tick,
	}
}

// Run - call Tick each interval until shutdown
func (p *Periodic) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			p.Tick()
		}
	}
}
