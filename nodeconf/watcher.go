// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodeconf

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher - reload the identities when the file changes
//
// the directory is watched so the file may be created or replaced
type Watcher struct {
	identities *Identities
	watcher    *fsnotify.Watcher
	reloaded   chan struct{}
}

// NewWatcher - watch the directory of the identities file
func NewWatcher(identities *Identities) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	directory := filepath.Dir(identities.fileName)
	if err := watcher.Add(directory); nil != err {
		watcher.Close()
		return nil, err
	}
	return &Watcher{
		identities: identities,
		watcher:    watcher,
		reloaded:   make(chan struct{}, 1),
	}, nil
}

// Reloaded - signalled after each reload attempt
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloaded
}

// Run - background process
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.identities.log
	log.Infof("watching: %s", w.identities.fileName)

	name := filepath.Base(w.identities.fileName)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if name != filepath.Base(event.Name) || !isChange(event) {
				continue loop
			}
			log.Infof("file event: %s", event)
			if err := w.identities.Reload(); nil != err {
				log.Errorf("reload error: %s", err)
			}
			w.signal()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	w.watcher.Close()
	log.Info("watcher stopped")
}

func (w *Watcher) signal() {
	select {
	case w.reloaded <- struct{}{}:
	default:
	}
}

func isChange(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
